package main

import (
	"fmt"
	"log/slog"
	"time"

	"minivox/internal/config"
	"minivox/internal/game"
	"minivox/internal/profiling"
	"minivox/internal/world"
)

// placeCycle is the palette the wander script builds with.
var placeCycle = []world.BlockType{
	world.BlockTypeStone,
	world.BlockTypeDirt,
	world.BlockTypeWood,
}

// runLoop advances the engine at the configured fixed rate until the
// simulated time runs out or stop closes. In realtime mode each step
// waits for its slot; otherwise the simulation free-runs.
func runLoop(log *slog.Logger, eng *game.Engine, cfg config.Config, seconds float64, realtime bool, stop <-chan struct{}) {
	limiter := game.NewStepLimiter(cfg.StepHz)
	dt := 1.0 / float64(cfg.StepHz)
	totalSteps := int(seconds * float64(cfg.StepHz))
	start := time.Now()

	for step := 0; step < totalSteps; step++ {
		select {
		case <-stop:
			log.Info("stopping early", "step", step)
			return
		default:
		}

		profiling.ResetFrame()
		stepStart := time.Now()
		eng.Step(dt, scriptedInput(step, cfg.StepHz))
		took := time.Since(stepStart)

		if realtime && took > limiter.Interval() {
			log.Warn("step took too long", "took", took, "target", limiter.Interval())
		}

		if (step+1)%cfg.StepHz == 0 {
			p := eng.Player()
			log.Info("second elapsed",
				"sim_s", (step+1)/cfg.StepHz,
				"pos", fmt.Sprintf("%.1f %.1f %.1f", p.Position.X(), p.Position.Y(), p.Position.Z()),
				"chunks", eng.Store().Len(),
				"instances", eng.Meshes().InstanceCount(),
				"physics", profiling.SumWithPrefix("physics."),
				"hot", profiling.TopN(3),
			)
		}

		if realtime {
			limiter.Wait()
		}
	}
	log.Info("run complete", "steps", totalSteps, "wall", time.Since(start))
}

// scriptedInput drives a deterministic wander so headless runs exercise
// walking, turning, jumping, digging and building without a controller.
func scriptedInput(step, hz int) game.Input {
	dt := float32(1) / float32(hz)
	in := game.Input{Forward: 1}

	// Weave: a long arc one way, a shorter arc back.
	if sec := step / hz; sec%7 < 4 {
		in.TurnYaw = 25 * dt
	} else {
		in.TurnYaw = -40 * dt
	}

	// Settle the gaze below the horizon during the first second so rays
	// meet the ground.
	if step < hz {
		in.TurnPitch = -20 * dt
	}

	if step%(3*hz) == 0 {
		in.Jump = true
	}
	if step%(2*hz) == hz/2 {
		in.Break = true
	}
	if step%(5*hz) == hz/4 {
		in.Place = true
		in.PlaceType = placeCycle[(step/(5*hz))%len(placeCycle)]
	}
	return in
}
