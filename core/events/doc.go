// Package events defines the typed assistant session event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - dialogue.*
//   - voice_capture.*
//   - assistant_speech.*
//   - widget.*
//
// dialogue events
//
//   - UserTurnAppended (dialogue.user_turn_appended): a user turn was added to
//     the session.
//   - AssistantTurnAppended (dialogue.assistant_turn_appended): an assistant
//     turn was added to the session. Failed completions still append a turn
//     carrying the fallback text.
//   - LanguageDetected (dialogue.language_detected): language resolved for the
//     latest user turn. Never stored on the session.
//
// voice_capture events
//
//   - RecordingStarted (voice_capture.recording_started): the input device is
//     capturing.
//   - RecordingStopped (voice_capture.recording_stopped): capture ended and
//     finalization began.
//   - CaptureFailed (voice_capture.failed): capture produced no user turn.
//
// assistant_speech events
//
//   - AssistantSpeechFailed (assistant_speech.failed): best-effort synthesis or
//     playback of a reply failed. The session is unaffected.
//
// widget events
//
//   - WidgetToggled (widget.toggled): the widget was opened or closed.
//   - DraftUpdated (widget.draft_updated): the typed input draft changed.
package events
