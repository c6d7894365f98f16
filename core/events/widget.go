package events

const (
	KindWidgetToggled Kind = "widget.toggled"
	KindDraftUpdated  Kind = "widget.draft_updated"
)

type WidgetToggled struct {
	Base
	Open bool
}

func NewWidgetToggled(open bool) WidgetToggled {
	return WidgetToggled{Base: NewBase(KindWidgetToggled), Open: open}
}

type DraftUpdated struct {
	Base
	Draft string
}

func NewDraftUpdated(draft string) DraftUpdated {
	return DraftUpdated{Base: NewBase(KindDraftUpdated), Draft: draft}
}
