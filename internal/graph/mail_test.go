package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInboxQuery(t *testing.T) {
	since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/mailFolders/inbox/messages", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "receivedDateTime desc", q.Get("$orderby"))
		assert.Equal(t, "receivedDateTime ge 2026-08-01T00:00:00Z", q.Get("$filter"))
		assert.Equal(t, "10", q.Get("$top"))

		_, _ = w.Write([]byte(`{
			"value": [
				{"id": "m1", "subject": "hello", "isRead": false, "receivedDateTime": "2026-08-02T10:00:00Z",
				 "from": {"emailAddress": {"name": "Alice", "address": "alice@example.com"}},
				 "bodyPreview": "hi there"}
			]
		}`))
	}))

	msgs, err := c.ListInbox(context.Background(), since, 10)
	require.NoError(t, err)

	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Subject)
	assert.Equal(t, "alice@example.com", msgs[0].From.EmailAddress.Address)
	assert.Equal(t, 2026, msgs[0].ReceivedDateTime.Year())
}

func TestListInboxHonorsLimitAcrossPages(t *testing.T) {
	calls := 0

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Every page claims there is more; the client must stop at limit.
		_, _ = w.Write([]byte(`{
			"value": [{"id": "m1", "subject": "a"}, {"id": "m2", "subject": "b"}],
			"@odata.nextLink": "http://` + r.Host + `/me/mailFolders/inbox/messages"
		}`))
	}))

	msgs, err := c.ListInbox(context.Background(), time.Time{}, 3)
	require.NoError(t, err)

	assert.Len(t, msgs, 3)
	assert.Equal(t, 2, calls)
}

func TestSendMail(t *testing.T) {
	var payload sendMailRequest

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/sendMail", r.URL.Path)

		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &payload))

		w.WriteHeader(http.StatusAccepted)
	}))

	err := c.SendMail(context.Background(), []string{"bob@example.com"}, "subject line", "body text")
	require.NoError(t, err)

	assert.Equal(t, "subject line", payload.Message.Subject)
	require.Len(t, payload.Message.ToRecipients, 1)
	assert.Equal(t, "bob@example.com", payload.Message.ToRecipients[0].EmailAddress.Address)
	assert.Equal(t, "Text", payload.Message.Body.ContentType)
	assert.Equal(t, "body text", payload.Message.Body.Content)
	assert.True(t, payload.SaveToSentItems)
}

func TestSendMailRequiresRecipient(t *testing.T) {
	c := NewClientWithBaseURL(nil, "http://localhost")

	err := c.SendMail(context.Background(), nil, "s", "b")
	require.Error(t, err)
}
