package geom

import "fmt"

// InvalidAxisError indicates the input axis cannot be sampled.
type InvalidAxisError struct {
	Reason string
}

func (e *InvalidAxisError) Error() string {
	return "invalid axis: " + e.Reason
}

// DegenerateTangentError indicates two consecutive samples coincide, so
// no tangent direction exists between them.
type DegenerateTangentError struct {
	Index   int
	Station float64
}

func (e *DegenerateTangentError) Error() string {
	return fmt.Sprintf("degenerate tangent at sample %d (station %.3f m): zero-length segment", e.Index, e.Station)
}

// CancelledError is returned when a cancel check aborts an operation.
// No partial result accompanies it.
type CancelledError struct {
	Op string
}

func (e *CancelledError) Error() string {
	return e.Op + " cancelled"
}
