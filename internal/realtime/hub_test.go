package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	messages [][]byte
}

func (f *fakeClient) Send(message []byte) bool {
	f.messages = append(f.messages, message)
	return true
}

func (f *fakeClient) Close() {}

func TestPublishReachesOnlyOwner(t *testing.T) {
	h := NewHub()

	mine := &fakeClient{}
	theirs := &fakeClient{}
	h.Register("u-1", mine)
	h.Register("u-2", theirs)

	h.Publish("u-1", Event{Type: EventProgressRecorded, TaskID: "t-1"})

	require.Len(t, mine.messages, 1)
	require.Empty(t, theirs.messages)

	var evt Event
	require.NoError(t, json.Unmarshal(mine.messages[0], &evt))
	require.Equal(t, EventProgressRecorded, evt.Type)
	require.Equal(t, "t-1", evt.TaskID)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	h := NewHub()
	c := &fakeClient{}
	h.Register("u-1", c)
	h.Unregister("u-1", c)

	h.Publish("u-1", Event{Type: EventReminder})
	require.Empty(t, c.messages)
}
