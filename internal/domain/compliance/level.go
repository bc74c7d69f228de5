// Package compliance holds the AGAD/COAFI compliance domain model: the
// report artifact and its parts, the fixed requirement catalog, the
// monitoring thresholds, alerts, and history points.
package compliance

// Level is a named policy tier controlling which catalog requirements
// apply during matrix construction and violation detection.
type Level string

const (
	LevelAGADL1     Level = "AGAD-L1"
	LevelAGADL2     Level = "AGAD-L2"
	LevelAGADL3     Level = "AGAD-L3"
	LevelCOAFIBasic Level = "COAFI-BASIC"
	LevelCOAFIFull  Level = "COAFI-FULL"
)

// Levels lists every recognized compliance level.
func Levels() []Level {
	return []Level{LevelAGADL1, LevelAGADL2, LevelAGADL3, LevelCOAFIBasic, LevelCOAFIFull}
}

// Valid reports whether l is a recognized compliance level.
func (l Level) Valid() bool {
	switch l {
	case LevelAGADL1, LevelAGADL2, LevelAGADL3, LevelCOAFIBasic, LevelCOAFIFull:
		return true
	}
	return false
}

// IsCOAFI reports whether l belongs to the COAFI family.
func (l Level) IsCOAFI() bool {
	return l == LevelCOAFIBasic || l == LevelCOAFIFull
}
