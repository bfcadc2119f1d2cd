package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

type staticEmailer struct {
	email string
	err   error
}

func (s staticEmailer) UserEmail(context.Context) (string, error) {
	return s.email, s.err
}

func testReport() model.Report {
	return model.Report{
		Subject:  "Daily Client Process Report - 2026-02-06",
		HTMLBody: "<html><body>3 processes</body></html>",
		TextBody: "3 processes",
	}
}

func newTestMail(t *testing.T, handler http.HandlerFunc, sender UserEmailer) *MailClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMailClient(MailClientOptions{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		Sender:     sender,
		Logger:     testLogger(),
	})
}

func TestMailClient_Send(t *testing.T) {
	t.Parallel()

	var captured sendMailRequest
	client := newTestMail(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/sendMail", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}, staticEmailer{email: "ops@perceptionlabs.example"})

	err := client.Send(context.Background(), testReport(), "reports@client.example")

	require.NoError(t, err)
	assert.Equal(t, "Daily Client Process Report - 2026-02-06", captured.Message.Subject)
	assert.Equal(t, "HTML", captured.Message.Body.ContentType)
	assert.Equal(t, "<html><body>3 processes</body></html>", captured.Message.Body.Content)
	require.Len(t, captured.Message.ToRecipients, 1)
	assert.Equal(t, "reports@client.example", captured.Message.ToRecipients[0].EmailAddress.Address)
	assert.True(t, captured.SaveToSentItems)
}

func TestMailClient_Send_DefaultsToSenderAddress(t *testing.T) {
	t.Parallel()

	var captured sendMailRequest
	client := newTestMail(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusAccepted)
	}, staticEmailer{email: "ops@perceptionlabs.example"})

	err := client.Send(context.Background(), testReport(), "")

	require.NoError(t, err)
	require.Len(t, captured.Message.ToRecipients, 1)
	assert.Equal(t, "ops@perceptionlabs.example", captured.Message.ToRecipients[0].EmailAddress.Address)
}

func TestMailClient_Send_SenderResolutionFailure(t *testing.T) {
	t.Parallel()

	client := newTestMail(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made when the recipient cannot be resolved")
	}, staticEmailer{err: assert.AnError})

	err := client.Send(context.Background(), testReport(), "")

	require.Error(t, err)
}

func TestMailClient_Send_GraphRejection(t *testing.T) {
	t.Parallel()

	client := newTestMail(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": "ErrorAccessDenied"}}`, http.StatusForbidden)
	}, staticEmailer{email: "ops@perceptionlabs.example"})

	err := client.Send(context.Background(), testReport(), "reports@client.example")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "ErrorAccessDenied")
}
