package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, err error) *[]string {
	t.Helper()
	var got []string
	orig := send
	send = func(title, message string) error {
		got = append(got, title+": "+message)
		return err
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestMessages(t *testing.T) {
	got := capture(t, nil)

	AlreadyRunning()
	UpdateInstalled("1.2.0")

	assert.Len(t, *got, 2)
	assert.Contains(t, (*got)[0], "already running")
	assert.Contains(t, (*got)[1], "1.2.0")
	assert.Contains(t, (*got)[1], "Restart")
}

func TestPostSwallowsErrors(t *testing.T) {
	capture(t, errors.New("no notification daemon"))
	assert.NotPanics(t, func() { Post("hello") })
}
