package domain

// LevelColors maps each level to its chart colour.
var LevelColors = map[int]string{
	0:  "#374151", // organization root
	1:  "#EF4444", // C-level
	2:  "#F59E0B", // VPs/directors
	3:  "#10B981", // senior managers
	4:  "#3B82F6", // managers
	5:  "#8B5CF6", // team leads
	6:  "#06B6D4", // senior ICs
	7:  "#EC4899", // mid-level ICs
	8:  "#84CC16", // junior ICs
	9:  "#6366F1", // entry level
	10: "#14B8A6", // interns/contractors
}

// LevelColor returns the colour for level, falling back to the root grey
// for levels outside the palette.
func LevelColor(level int) string {
	if c, ok := LevelColors[level]; ok {
		return c
	}
	return LevelColors[0]
}

// DefaultVisibleLayers is the initial layer filter: every real level.
func DefaultVisibleLayers() []int {
	layers := make([]int, 0, MaxLevel)
	for l := 1; l <= MaxLevel; l++ {
		layers = append(layers, l)
	}
	return layers
}
