package ui

// Fixed layout sizes.
const (
	// headerHeight covers the title bar and the command bar.
	headerHeight = 2

	// detailChrome is the detail box border plus its title line.
	detailChrome = 3

	// markerWidth is the changed marker column plus a space.
	markerWidth = 2

	nameMinWidth = 8
	nameMaxWidth = 24

	// LayoutCompactWidth is the threshold below which the command bar
	// drops its descriptions.
	LayoutCompactWidth = 70
)

// UpdatedMarker flags a row whose file changed since it was last seen.
const UpdatedMarker = "*"

// detailSize returns the content area of the detail box for a terminal of
// the given size.
func detailSize(width, height int) (rows, cols int) {
	rows = height - headerHeight - detailChrome
	cols = width - 2
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return rows, cols
}

// listHeight is the number of file rows that fit below the header.
func listHeight(height int) int {
	if h := height - headerHeight; h > 0 {
		return h
	}
	return 0
}
