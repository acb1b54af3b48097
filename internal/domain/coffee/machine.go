package coffee

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/garyjia/coffee-machine/internal/domain/workflow"
)

// Result describes one brew attempt
type Result struct {
	Success bool
	Message string
	Failure Failure
	// Path lists every state entered, in order, ending with Idle
	Path []workflow.State
	// Err is set only when the transition table rejected a step
	Err error
}

// Option configures a Machine
type Option func(*Machine)

// WithLogger sets the logger used for brew attempts
func WithLogger(logger *zap.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Machine is a coffee machine whose brew attempts run through the readiness chart.
// It is not safe for concurrent use; callers must serialize Brew calls.
type Machine struct {
	sensors workflow.Sensors
	sm      workflow.StateMachine
	logger  *zap.Logger
}

// NewMachine creates a machine in the Idle state with the given sensor readings
func NewMachine(waterFilled, binEmpty, capsuleInserted bool, opts ...Option) *Machine {
	m := &Machine{
		sensors: workflow.Sensors{
			WaterTankFilled: waterFilled,
			CapsuleBinEmpty: binEmpty,
			CapsuleInserted: capsuleInserted,
		},
		sm:     brewTransitions.Build(workflow.StateIdle),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state. Outside of Brew it is always Idle.
func (m *Machine) State() workflow.State {
	return m.sm.State()
}

// Sensors returns the current sensor readings
func (m *Machine) Sensors() workflow.Sensors {
	return m.sensors
}

// SetSensors replaces all sensor readings
func (m *Machine) SetSensors(s workflow.Sensors) {
	m.sensors = s
}

func (m *Machine) SetWaterTankFilled(v bool) { m.sensors.WaterTankFilled = v }
func (m *Machine) SetCapsuleBinEmpty(v bool) { m.sensors.CapsuleBinEmpty = v }
func (m *Machine) SetCapsuleInserted(v bool) { m.sensors.CapsuleInserted = v }

// Brew runs one brew attempt and reports whether coffee was brewed
func (m *Machine) Brew() (bool, string) {
	res := m.BrewContext(context.Background())
	return res.Success, res.Message
}

// BrewContext runs one brew attempt. A failed precondition ends the attempt;
// the caller fixes the sensors and brews again. The machine is Idle on return.
func (m *Machine) BrewContext(ctx context.Context) Result {
	// An interrupted attempt never leaves the machine mid-chart
	if err := m.sm.Reset(workflow.StateIdle); err != nil {
		return m.broken(err, nil)
	}
	if err := ctx.Err(); err != nil {
		return Result{Message: err.Error(), Err: err}
	}

	sensors := m.sensors
	path := make([]workflow.State, 0, len(preconditions)+2)

	fire := func(trigger workflow.Trigger) error {
		from := m.sm.State()
		if err := m.sm.Fire(ctx, trigger, sensors); err != nil {
			return err
		}
		path = append(path, m.sm.State())
		m.logger.Debug("Brew transition",
			zap.Stringer("from", from),
			zap.Stringer("trigger", trigger),
			zap.Stringer("to", m.sm.State()))
		return nil
	}

	if err := fire(workflow.TriggerBrew); err != nil {
		return m.broken(err, path)
	}

	for m.sm.State().IsCheck() {
		state := m.sm.State()
		err := fire(workflow.TriggerProceed)
		if err == nil {
			continue
		}
		if !errors.Is(err, workflow.ErrGuardFailed) {
			return m.broken(err, path)
		}

		failure := failureFor(state)
		if err := fire(workflow.TriggerAbort); err != nil {
			return m.broken(err, path)
		}

		m.logger.Warn("Brew precondition failed",
			zap.Stringer("state", state),
			zap.String("failure", failure.String()),
			zap.String("message", failure.Message()))

		return Result{
			Success: false,
			Message: failure.Message(),
			Failure: failure,
			Path:    path,
		}
	}

	if m.sm.State() != workflow.StateBrewing {
		return m.broken(workflow.ErrInvalidState, path)
	}
	if err := fire(workflow.TriggerFinish); err != nil {
		return m.broken(err, path)
	}

	m.logger.Info("Coffee brewed", zap.Int("transitions", len(path)))

	return Result{
		Success: true,
		Message: MessageBrewed,
		Path:    path,
	}
}

// broken handles a step the transition table rejected
func (m *Machine) broken(err error, path []workflow.State) Result {
	m.logger.Error("Brew transition rejected",
		zap.Stringer("state", m.sm.State()),
		zap.Error(err))

	if m.sm.State() != workflow.StateIdle {
		_ = m.sm.Reset(workflow.StateIdle)
		path = append(path, workflow.StateIdle)
	}

	return Result{
		Success: false,
		Message: err.Error(),
		Path:    path,
		Err:     err,
	}
}
