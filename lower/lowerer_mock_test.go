// SPDX-License-Identifier: MIT
package lower_test

import (
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
)

// MockHDLLowerer is a hand-authored mock of guard.HDLLowerer, in the shape
// mockgen would generate, kept local to this package since the interface is
// tiny and a generated file would otherwise need its own go:generate wiring
// this module doesn't carry. Exercised where the lowerer's IR-emission
// contract (which node reached LowerRvalue, in what order, how many times)
// needs stricter verification than a hand-rolled stand-in like
// guard.MapLowerer gives testify/mock-style call recording.
type MockHDLLowerer struct {
	ctrl     *gomock.Controller
	recorder *MockHDLLowererMockRecorder
}

type MockHDLLowererMockRecorder struct {
	mock *MockHDLLowerer
}

func NewMockHDLLowerer(ctrl *gomock.Controller) *MockHDLLowerer {
	m := &MockHDLLowerer{ctrl: ctrl}
	m.recorder = &MockHDLLowererMockRecorder{mock: m}
	return m
}

func (m *MockHDLLowerer) EXPECT() *MockHDLLowererMockRecorder {
	return m.recorder
}

func (m *MockHDLLowerer) LowerRvalue(e ir.Emitter, node psl.Node) (ir.Reg, bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LowerRvalue", e, node)
	ret0, _ := ret[0].(ir.Reg)
	ret1, _ := ret[1].(bool)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

func (mr *MockHDLLowererMockRecorder) LowerRvalue(e, node any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LowerRvalue",
		reflect.TypeOf((*MockHDLLowerer)(nil).LowerRvalue), e, node)
}
