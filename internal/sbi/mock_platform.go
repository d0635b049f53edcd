// Code generated by hand in the shape mockgen would produce for the
// Platform interface; kept here rather than regenerated so the module never
// needs to invoke the mockgen binary as part of this exercise.

package sbi

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockPlatform is a gomock-style mock of Platform, used by sched tests
// that need to assert on exact SetTimer/SetSatp/Shutdown calls rather
// than on Sim's observable state.
type MockPlatform struct {
	ctrl     *gomock.Controller
	recorder *MockPlatformMockRecorder
}

type MockPlatformMockRecorder struct {
	mock *MockPlatform
}

func NewMockPlatform(ctrl *gomock.Controller) *MockPlatform {
	m := &MockPlatform{ctrl: ctrl}
	m.recorder = &MockPlatformMockRecorder{m}
	return m
}

func (m *MockPlatform) EXPECT() *MockPlatformMockRecorder {
	return m.recorder
}

func (m *MockPlatform) ConsolePutchar(c byte) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ConsolePutchar", c)
}

func (mr *MockPlatformMockRecorder) ConsolePutchar(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConsolePutchar", reflect.TypeOf((*MockPlatform)(nil).ConsolePutchar), c)
}

func (m *MockPlatform) ConsoleGetchar() (byte, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConsoleGetchar")
	return ret[0].(byte), ret[1].(bool)
}

func (mr *MockPlatformMockRecorder) ConsoleGetchar() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConsoleGetchar", reflect.TypeOf((*MockPlatform)(nil).ConsoleGetchar))
}

func (m *MockPlatform) SetTimer(deadline uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetTimer", deadline)
}

func (mr *MockPlatformMockRecorder) SetTimer(deadline interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetTimer", reflect.TypeOf((*MockPlatform)(nil).SetTimer), deadline)
}

func (m *MockPlatform) Time() uint64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Time")
	return ret[0].(uint64)
}

func (mr *MockPlatformMockRecorder) Time() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Time", reflect.TypeOf((*MockPlatform)(nil).Time))
}

func (m *MockPlatform) SetSatp(token uint64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetSatp", token)
}

func (mr *MockPlatformMockRecorder) SetSatp(token interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetSatp", reflect.TypeOf((*MockPlatform)(nil).SetSatp), token)
}

func (m *MockPlatform) Shutdown() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Shutdown")
}

func (mr *MockPlatformMockRecorder) Shutdown() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Shutdown", reflect.TypeOf((*MockPlatform)(nil).Shutdown))
}
