package deepgram

type deepgramVoice string

const (
	VoiceAsteria deepgramVoice = "aura-2-asteria-en"
	VoiceLuna    deepgramVoice = "aura-2-luna-en"
	VoiceStella  deepgramVoice = "aura-2-stella-en"
	VoiceAthena  deepgramVoice = "aura-2-athena-en"
	VoiceHera    deepgramVoice = "aura-2-hera-en"
	VoiceOrion   deepgramVoice = "aura-2-orion-en"
	VoiceArcas   deepgramVoice = "aura-2-arcas-en"
	VoicePerseus deepgramVoice = "aura-2-perseus-en"
	VoiceAngus   deepgramVoice = "aura-2-angus-en"
	VoiceOrpheus deepgramVoice = "aura-2-orpheus-en"
	VoiceHelios  deepgramVoice = "aura-2-helios-en"
	VoiceZeus    deepgramVoice = "aura-2-zeus-en"

	defaultVoice = VoiceAsteria
)

func GetAvailableVoices() []deepgramVoice {
	return []deepgramVoice{
		VoiceAsteria, VoiceLuna, VoiceStella, VoiceAthena, VoiceHera, VoiceOrion,
		VoiceArcas, VoicePerseus, VoiceAngus, VoiceOrpheus, VoiceHelios, VoiceZeus,
	}
}
