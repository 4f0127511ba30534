package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMailgun_SendWithoutRecipients(t *testing.T) {
	m := NewMailgun("mg.example.com", "key-test", "Music Catalog <noreply@mg.example.com>")
	require.Error(t, m.Send(context.Background(), nil, "subject", "body"))
}
