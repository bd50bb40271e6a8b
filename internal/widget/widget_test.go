package widget

import (
	"errors"
	"testing"

	"github.com/dgallion1/checktree/internal/checktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groceries() []checktree.Item {
	return []checktree.Item{
		{Label: "Fruit", Items: []checktree.Item{
			{Label: "Apple", Value: "apple"},
			{Label: "Pear", Value: "pear"},
		}},
		{Label: "Dairy", Items: []checktree.Item{
			{Label: "Milk", Value: "milk"},
			{Label: "Cheese", Items: []checktree.Item{
				{Label: "Brie", Value: "brie"},
				{Label: "Gouda", Value: "gouda"},
			}},
		}},
	}
}

func TestWidget_ToggleAndCollect(t *testing.T) {
	var changes []Change
	w := New(Options{OnChange: func(c Change) { changes = append(changes, c) }})
	require.NoError(t, w.Load(groceries()))
	assert.Equal(t, 8, w.Len())
	assert.Empty(t, w.Collect())

	require.NoError(t, w.Toggle("dairy-1/cheese-1", true))
	assert.Equal(t, []string{"brie", "gouda"}, w.Collect())

	dairy, ok := w.Node("dairy-1")
	require.True(t, ok)
	assert.True(t, dairy.Indeterminate)

	require.NoError(t, w.Toggle("dairy-1/milk-0", true))
	assert.True(t, dairy.Checked)

	require.Len(t, changes, 3)
	assert.Equal(t, ChangeLoad, changes[0].Kind)
	assert.Equal(t, ChangeToggle, changes[1].Kind)
	assert.Equal(t, "cheese-1", changes[1].Node.ID)
	assert.True(t, changes[2].Checked)
}

func TestWidget_OnChangeSeesPropagatedState(t *testing.T) {
	var parentChecked bool
	var w *Widget
	w = New(Options{OnChange: func(c Change) {
		if c.Kind == ChangeToggle {
			n, _ := w.Node("fruit-0")
			parentChecked = n.Checked
		}
	}})
	require.NoError(t, w.Load(groceries()))
	require.NoError(t, w.Toggle("fruit-0/apple-0", true))
	require.NoError(t, w.Toggle("fruit-0/pear-1", true))
	assert.True(t, parentChecked)
}

func TestWidget_UnknownNode(t *testing.T) {
	w := New(DefaultOptions())
	require.NoError(t, w.Load(groceries()))
	err := w.Toggle("fruit-0/banana-9", true)
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestWidget_BuildKeepsTreeOnValidationError(t *testing.T) {
	w := New(DefaultOptions())
	require.NoError(t, w.Load(groceries()))
	require.NoError(t, w.Toggle("fruit-0/apple-0", true))

	err := w.Build([]checktree.Item{{Label: "Broken"}}, false)
	require.Error(t, err)
	var verr *checktree.ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.Equal(t, []string{"apple"}, w.Collect())
	assert.Equal(t, 8, w.Len())
}

func TestWidget_ReloadDiscardsState(t *testing.T) {
	w := New(DefaultOptions())
	require.NoError(t, w.Load(groceries()))
	require.NoError(t, w.Toggle("fruit-0", true))
	w.Filter("apple")

	require.NoError(t, w.Build(groceries(), true))
	assert.Empty(t, w.Collect())
	assert.Equal(t, "", w.Query())
	w.Walk(func(n *checktree.Node) bool {
		assert.False(t, n.Hidden)
		return true
	})

	require.NoError(t, w.Toggle("fruit-0", true))
	assert.Equal(t, []string{"Apple", "Pear"}, w.Collect())
}

func TestWidget_Select(t *testing.T) {
	w := New(DefaultOptions())
	require.NoError(t, w.Load(groceries()))
	assert.Equal(t, 2, w.Select([]string{"pear", "gouda"}))

	cheese, _ := w.Node("dairy-1/cheese-1")
	assert.True(t, cheese.Indeterminate)
	assert.Equal(t, []string{"pear", "gouda"}, w.Collect())
}

func TestWidget_Filter(t *testing.T) {
	var got []string
	w := New(Options{OnChange: func(c Change) {
		if c.Kind == ChangeFilter {
			got = append(got, c.Query)
		}
	}})
	require.NoError(t, w.Load(groceries()))

	assert.Equal(t, 3, w.Filter("brie"))
	assert.Equal(t, "brie", w.Query())
	fruit, _ := w.Node("fruit-0")
	assert.True(t, fruit.Hidden)

	assert.Equal(t, 8, w.Filter(""))
	assert.Equal(t, []string{"brie", ""}, got)
}

func TestWidget_FuzzyFilter(t *testing.T) {
	w := New(Options{FuzzyThreshold: 0.85})
	require.NoError(t, w.Load(groceries()))
	assert.Equal(t, 3, w.Filter("goudda"))
}

func TestWidget_Collapse(t *testing.T) {
	w := New(DefaultOptions())
	require.NoError(t, w.Load(groceries()))
	assert.ErrorIs(t, w.Collapse("fruit-0"), ErrCollapseDisabled)

	w = New(Options{Collapse: CollapseOptions{Enabled: true}})
	require.NoError(t, w.Load(groceries()))
	require.NoError(t, w.Collapse("fruit-0"))
	fruit, _ := w.Node("fruit-0")
	assert.True(t, fruit.Collapsed)
	assert.ErrorIs(t, w.Collapse("fruit-0/apple-0"), ErrNotBranch)
	assert.ErrorIs(t, w.Expand("nope"), ErrUnknownNode)

	require.NoError(t, w.Expand("fruit-0"))
	assert.False(t, fruit.Collapsed)

	// Collapsing never changes what is selected.
	require.NoError(t, w.Toggle("fruit-0", true))
	require.NoError(t, w.Collapse("fruit-0"))
	assert.Equal(t, []string{"apple", "pear"}, w.Collect())
}

func TestNew_DefaultsCollapseSpeed(t *testing.T) {
	w := New(Options{})
	assert.Equal(t, DefaultOptions().Collapse.Speed, w.Options().Collapse.Speed)
}
