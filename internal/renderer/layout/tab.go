package layout

// TabStop is the fixed tab width used for display expansion.
const TabStop = 4

// TabStopOffset returns how many spaces a tab at the given column expands to.
func TabStopOffset(col int) int {
	return TabStop - (col % TabStop)
}
