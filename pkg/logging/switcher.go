package logging

import (
	"fmt"
	"sync"
	"time"
)

const maxSwitchDuration = 24 * time.Hour

var (
	ErrorDurationTooLong      = fmt.Errorf("logging: level switch duration should be less than %s", maxSwitchDuration)
	ErrorLoglevelNotPermitted = fmt.Errorf("logging: fatal and panic levels cannot be switched to")
)

// levelSwitch remembers the level that was in effect before the first of a
// run of temporary switches and puts it back when the last one expires.
type levelSwitch struct {
	mu      sync.Mutex
	timer   *time.Timer
	restore Level
	active  bool
}

var switcher levelSwitch

func (s *levelSwitch) set(level Level, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		s.restore = GetLevel()
		s.active = true
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(duration, s.expire)
	} else {
		s.timer.Reset(duration)
	}
	SetLevel(level)
}

func (s *levelSwitch) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		SetLevel(s.restore)
		s.active = false
	}
}

// SetLevelTemporary switches the default logger level and restores the
// previous one once duration elapses. A later call restarts the countdown.
func SetLevelTemporary(level Level, duration time.Duration) error {
	if level == PanicLevel || level == FatalLevel {
		return ErrorLoglevelNotPermitted
	}
	if duration > maxSwitchDuration {
		return ErrorDurationTooLong
	}
	switcher.set(level, duration)
	return nil
}
