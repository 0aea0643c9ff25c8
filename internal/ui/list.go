package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/filedialog/internal/recent"
)

var (
	_ list.Item = locationItem{}
)

// locationItem wraps [recent.Location] to implement [list.Item].
type locationItem struct {
	location recent.Location
}

func (i locationItem) FilterValue() string { return i.location.Directory }
func (i locationItem) Title() string       { return i.location.Directory }
func (i locationItem) Description() string {
	desc := fmt.Sprintf("%s/%s", i.location.Family, i.location.Kind)
	if i.location.Uses > 1 {
		desc = fmt.Sprintf("%s • used %d times", desc, i.location.Uses)
	}
	return fmt.Sprintf("%s • %s", desc, i.location.UpdatedAt.Format("Jan 2 15:04"))
}
