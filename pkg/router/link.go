package router

import (
	"github.com/vango-dev/vroute/internal/locale"
	"github.com/vango-dev/vroute/pkg/component"
	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/ui"
)

// LinkComponent is a button that navigates when activated.
type LinkComponent struct {
	to    string
	child any
}

// Link creates a button navigating to to. The label is child when it is a
// string or component.Text, otherwise a localized fallback ("Link" in
// English).
func Link(to string, child any) *LinkComponent {
	return &LinkComponent{to: to, child: child}
}

// To returns the target path.
func (l *LinkComponent) To() string { return l.to }

// Mount implements component.Component.
func (l *LinkComponent) Mount(scope *reactive.Owner, parent ui.Node) {
	store := UseStore(scope)

	label, ok := component.PlainText(l.child)
	if !ok {
		loc := locale.English()
		if store != nil {
			loc = store.locale
		}
		label = loc.LinkFallback()
	}

	btn := component.Element(scope, parent, ui.ClassTextButton, ui.Props{
		ui.PropName:            "Link " + l.to,
		ui.PropAutomaticSize:   ui.AutomaticSizeXY,
		ui.PropBackgroundColor: ui.White,
		ui.PropBorderSize:      0,
		ui.PropTextSize:        14,
		ui.PropFont:            ui.FontSourceSans,
		ui.PropText:            label,
	})

	navigate := UseRouter(scope).Navigate
	disconnect := btn.Connect(ui.EventActivated, func() {
		navigate(l.to)
	})
	scope.OnCleanup(disconnect)
}
