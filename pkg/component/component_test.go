package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vroute/pkg/reactive"
	"github.com/vango-dev/vroute/pkg/ui"
	"github.com/vango-dev/vroute/pkg/ui/headless"
)

func TestMountAndUnmount(t *testing.T) {
	root := headless.NewRoot()
	scope := reactive.NewOwner(nil)

	c := Group(
		Text("hello"),
		Func(func(s *reactive.Owner, parent ui.Node) {
			Element(s, parent, ui.ClassFrame, ui.Props{ui.PropName: "box"})
		}),
		nil,
	)

	child := Mount(c, scope, root)
	require.Len(t, root.Children(), 2)

	label := root.Children()[0]
	assert.Equal(t, ui.ClassTextLabel, label.Class())
	text, _ := label.Get(ui.PropText)
	assert.Equal(t, "hello", text)
	assert.NotNil(t, root.Find("box"))

	child.Dispose()
	assert.Empty(t, root.Children())
	assert.True(t, label.Destroyed())
}

func TestMountNil(t *testing.T) {
	scope := Mount(nil, nil, headless.NewRoot())
	assert.NotNil(t, scope)
	assert.Nil(t, scope.Parent())
}

func TestPlainText(t *testing.T) {
	s, ok := PlainText("Home")
	assert.True(t, ok)
	assert.Equal(t, "Home", s)

	s, ok = PlainText(Text("Profile"))
	assert.True(t, ok)
	assert.Equal(t, "Profile", s)

	_, ok = PlainText(Group(Text("a")))
	assert.False(t, ok)

	_, ok = PlainText(nil)
	assert.False(t, ok)
}
