package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialExpiryMessage(t *testing.T) {
	subject, body := trialExpiryMessage("Trattoria Bella", 3)
	assert.Equal(t, "Deine TableFox Testphase endet in 3 Tagen", subject)
	assert.Contains(t, body, "Trattoria Bella")
	assert.Contains(t, body, "/plans")

	subject, _ = trialExpiryMessage("Trattoria Bella", 1)
	assert.Equal(t, "Deine TableFox Testphase endet morgen", subject)
}

func TestSubscriptionConfirmationMessage(t *testing.T) {
	subject, body := subscriptionConfirmationMessage("Trattoria Bella", "Pro")
	assert.Equal(t, "Dein TableFox Abo ist aktiv", subject)
	assert.Contains(t, body, "Trattoria Bella")
	assert.Contains(t, body, "<strong>Pro</strong>")
}

func TestCancellationConfirmationMessage(t *testing.T) {
	subject, body := cancellationConfirmationMessage("Trattoria Bella", "15.06.2023")
	assert.Equal(t, "Dein TableFox Abo wurde gekündigt", subject)
	assert.Contains(t, body, "Trattoria Bella")
	assert.Contains(t, body, "15.06.2023")
}
