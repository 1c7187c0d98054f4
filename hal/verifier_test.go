//go:build test_unit

package hal_test

import (
	"context"
	"testing"
	"time"

	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/machinekit/go-machinetalk/hal"
	"github.com/machinekit/go-machinetalk/hal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type Or2Suite struct {
	suite.Suite

	rt       *sim.Runtime
	verifier *hal.Verifier
}

func (suite *Or2Suite) SetupTest() {
	suite.rt = sim.NewRuntime(&machinetalk.NullLogger{})
	suite.verifier = hal.NewVerifier(&machinetalk.NullLogger{}, suite.rt, "or2")
	suite.Require().NoError(suite.verifier.Setup())
}

func (suite *Or2Suite) TearDownTest() {
	suite.Require().NoError(suite.verifier.Teardown())
	suite.NoError(suite.rt.CheckClean())
}

func (suite *Or2Suite) TestPinProperties() {
	suite.Require().NoError(suite.verifier.CheckPins(hal.Or2Pins))

	// unlinked default values
	for _, name := range []string{"or2.0.in0", "or2.0.in1", "or2.0.out"} {
		pin, err := suite.rt.Pin(name)
		suite.Require().NoError(err)
		suite.False(pin.Get(), "%s default value", name)
	}
}

func (suite *Or2Suite) TestTruthTable() {
	err := suite.verifier.CheckTruthTable(context.Background(), []string{"in0", "in1"}, "out", hal.Or2TruthTable)
	suite.NoError(err)
}

func (suite *Or2Suite) TestToggleSequence() {
	in0, err := suite.rt.Pin("or2.0.in0")
	suite.Require().NoError(err)
	in1, err := suite.rt.Pin("or2.0.in1")
	suite.Require().NoError(err)

	ctx := context.Background()
	for _, step := range []struct {
		pin  hal.Pin
		val  bool
		want bool
	}{
		{in0, true, true},
		{in0, false, false},
		{in1, true, true},
		{in1, false, false},
		{in1, true, true},
		{in0, true, true},
	} {
		suite.Require().NoError(step.pin.Set(step.val))
		suite.Require().NoError(suite.verifier.WaitFor(ctx, "out", step.want))
	}
}

func (suite *Or2Suite) TestOutputNotWritable() {
	out, err := suite.rt.Pin("or2.0.out")
	suite.Require().NoError(err)
	suite.ErrorIs(out.Set(true), hal.ErrPinDirection)
}

func (suite *Or2Suite) TestWrongPinSpec() {
	err := suite.verifier.CheckPins([]hal.PinSpec{{Suffix: "out", Type: hal.PinTypeBit, Dir: hal.PinDirIn}})
	suite.ErrorIs(err, hal.ErrMismatch)

	err = suite.verifier.CheckPins([]hal.PinSpec{{Suffix: "in0", Type: hal.PinTypeFloat, Dir: hal.PinDirIn}})
	suite.ErrorIs(err, hal.ErrPinType)

	err = suite.verifier.CheckPins([]hal.PinSpec{{Suffix: "in2", Type: hal.PinTypeBit, Dir: hal.PinDirIn}})
	suite.ErrorIs(err, hal.ErrNotFound)
}

func TestOr2Suite(t *testing.T) {
	suite.Run(t, new(Or2Suite))
}

func TestTruthTableMismatch(t *testing.T) {
	rt := sim.NewRuntime(&machinetalk.NullLogger{})
	v := hal.NewVerifier(&machinetalk.NullLogger{}, rt, "and2")
	v.SettleTime = 50 * time.Millisecond

	require.NoError(t, v.Setup())

	err := v.CheckTruthTable(context.Background(), []string{"in0", "in1"}, "out", hal.Or2TruthTable)
	assert.ErrorIs(t, err, hal.ErrMismatch)
	assert.ErrorContains(t, err, "and2.0.out")

	require.NoError(t, v.Teardown())
}

func TestWaitForCanceled(t *testing.T) {
	rt := sim.NewRuntime(&machinetalk.NullLogger{})
	v := hal.NewVerifier(&machinetalk.NullLogger{}, rt, "or2")
	require.NoError(t, v.Setup())
	defer func() { require.NoError(t, v.Teardown()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, v.WaitFor(ctx, "out", true), context.Canceled)
}

func TestSetupUnknownComponent(t *testing.T) {
	rt := sim.NewRuntime(&machinetalk.NullLogger{})
	v := hal.NewVerifier(&machinetalk.NullLogger{}, rt, "or3")

	assert.ErrorIs(t, v.Setup(), hal.ErrNotFound)
	assert.NoError(t, v.Teardown())
	assert.NoError(t, rt.CheckClean())
}

func TestNotGate(t *testing.T) {
	rt := sim.NewRuntime(&machinetalk.NullLogger{})
	v := hal.NewVerifier(&machinetalk.NullLogger{}, rt, "not")
	require.NoError(t, v.Setup())

	err := v.CheckTruthTable(context.Background(), []string{"in"}, "out", []hal.TruthRow{
		{Inputs: []bool{false}, Want: true},
		{Inputs: []bool{true}, Want: false},
	})
	assert.NoError(t, err)

	require.NoError(t, v.Teardown())
}

func TestWaitForZeroSettleTimeIsBounded(t *testing.T) {
	rt := sim.NewRuntime(&machinetalk.NullLogger{})
	v := hal.NewVerifier(&machinetalk.NullLogger{}, rt, "and2")
	v.SettleTime = 0
	v.PollInterval = 0
	require.NoError(t, v.Setup())
	defer func() { require.NoError(t, v.Teardown()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*hal.DefaultSettleTime)
	defer cancel()

	start := time.Now()
	err := v.WaitFor(ctx, "out", true)
	assert.ErrorIs(t, err, hal.ErrMismatch)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*hal.DefaultSettleTime)
}
