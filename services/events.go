package services

import "realestate-aggregator/utils"

// Stage names a pipeline step that reports events.
type Stage string

const (
	StageIngest Stage = "ingest"
	StageDedup  Stage = "dedup"
	StageExport Stage = "export"
)

// Phase marks whether an event opens or closes a stage.
type Phase string

const (
	PhaseStart Phase = "start"
	PhaseEnd   Phase = "end"
)

// Event is emitted at every stage boundary. Count is the number of listings
// the stage received (start) or produced (end).
type Event struct {
	PipelineID string
	Stage      Stage
	Phase      Phase
	Source     string
	Count      int
	Err        error
}

// Observer receives pipeline events. It must not call back into the pipeline.
type Observer func(Event)

// LogObserver reports events through logger.
func LogObserver(logger *utils.Logger) Observer {
	return func(e Event) {
		tag := string(e.Stage)
		if e.Source != "" {
			tag += ":" + e.Source
		}

		switch {
		case e.Err != nil:
			logger.Error("[%s] %s failed: %v", tag, e.Stage, e.Err)
		case e.Phase == PhaseStart:
			logger.Debug("[%s] started with %d listings (pipeline %s)", tag, e.Count, e.PipelineID)
		default:
			logger.Info("[%s] done: %d listings", tag, e.Count)
		}
	}
}
