package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func verdict(v bool) *bool { return &v }

func TestLabelPrecedence(t *testing.T) {
	cases := []struct {
		name    string
		correct *bool
		status  string
		want    string
	}{
		{"correct beats live", verdict(true), "Live", LabelCorrect},
		{"correct beats finished", verdict(true), "Match Finished", LabelCorrect},
		{"incorrect beats live", verdict(false), "In Play", LabelIncorrect},
		{"finished without verdict", nil, "Match Finished", LabelFinished},
		{"full time", nil, "FULL TIME", LabelFinished},
		{"live", nil, "Live", LabelLive},
		{"second half", nil, "2nd Half", LabelLive},
		{"ao vivo", nil, "Ao Vivo", LabelLive},
		{"not started", nil, "NS", LabelPending},
		{"no status", nil, "", LabelPending},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Label(c.correct, c.status).Code)
		})
	}
}

func TestLabelTexts(t *testing.T) {
	assert.Equal(t, "Você acertou!", Label(verdict(true), "").Text)
	assert.Equal(t, "Não foi dessa vez!", Label(verdict(false), "").Text)
	assert.Equal(t, "Finalizado", Label(nil, "finished").Text)
	assert.Equal(t, "Ao vivo", Label(nil, "live").Text)
	assert.Equal(t, "Aguardando", Label(nil, "").Text)
}
