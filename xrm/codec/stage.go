package codec

import "fmt"

// Stage identifies where in a pipeline a failure happened. Hosts display it
// next to the error kind; the codec itself never logs.
type Stage int

const (
	StageUnopened Stage = iota
	StageDirectoryParsed
	StageGeometryDecoded
	StageMaterialsDecoded
	StageAssembled
	StageNormalsResolved
	StageReady

	StageModelValidated
	StageBodiesSerialized
	StageDirectoryFinalized
	StageWritten
)

var stageNames = map[Stage]string{
	StageUnopened:           "unopened",
	StageDirectoryParsed:    "directory-parsed",
	StageGeometryDecoded:    "geometry-decoded",
	StageMaterialsDecoded:   "materials-decoded",
	StageAssembled:          "assembled",
	StageNormalsResolved:    "normals-resolved",
	StageReady:              "ready",
	StageModelValidated:     "model-validated",
	StageBodiesSerialized:   "bodies-serialized",
	StageDirectoryFinalized: "directory-finalized",
	StageWritten:            "written",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError wraps a pipeline failure with the last stage that completed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("after stage %v: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
