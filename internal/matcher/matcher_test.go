package matcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/certmeta/internal/domain"
	"github.com/hyperifyio/certmeta/internal/normalize"
)

const (
	udemyText = "Certificate no. UC-7F3A9B2C Certificate url ude.my/UC-7F3A9B2C " +
		"This is to certify that Jane Doe successfully completed the Go Web Development online course " +
		"on May 5, 2024 Instructor: Todd McLeod"
	cybraryText = "Certificate of Completion This certifies that Jane Doe has completed training " +
		"provided by Cybrary in Network Fundamentals Date of Completion May 5, 2024 10:30AM UTC " +
		"Certificate C-1a2b3c4d-5e6f7a"
	dlaiText = "Congratulations on completing Building Systems with the ChatGPT API! Jane Doe"
	liText   = "Certificate of Completion Jane Doe Course completed by May 5, 2024 at 09:30AM UTC " +
		"Top skills covered Python, Data Analysis Certificate ID: AbC123xYz"
)

func TestRegistry_Lookup(t *testing.T) {
	r := Default()
	for _, p := range domain.Providers {
		m, err := r.Lookup(p)
		require.NoError(t, err)
		assert.Equal(t, p, m.Provider())
	}
	_, err := r.Lookup(domain.Provider("coursera"))
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestUdemy_Match(t *testing.T) {
	res, ok := Udemy{}.Match(normalize.Text(udemyText), "cert.pdf")
	require.True(t, ok)
	assert.Equal(t, "Go Web Development", res.Title)
	assert.Equal(t, "May 5, 2024", res.CompletionDate)
	assert.Equal(t, "UC-7F3A9B2C", res.CertificateID)
	assert.Equal(t, []string{"Tod McLeod"}, res.Instructors)
	assert.Empty(t, res.Skills)
}

func TestUdemy_CertificateURLFallback(t *testing.T) {
	text := "completed the Go course on May 5, 2024 Certificate url ude.my/UC-9ABC"
	res, ok := Udemy{}.Match(text, "")
	require.True(t, ok)
	assert.Equal(t, "UC-9ABC", res.CertificateID)
	assert.Empty(t, res.Instructors)
}

func TestUdemy_NoIDLeavesFallbackToBuilder(t *testing.T) {
	res, ok := Udemy{}.Match("completed the Go course on June 1, 2023 Instructor: A", "")
	require.True(t, ok)
	assert.Empty(t, res.CertificateID)
}

func TestCybrary_Match(t *testing.T) {
	res, ok := Cybrary{}.Match(normalize.Text(cybraryText), "")
	require.True(t, ok)
	assert.Equal(t, "Network Fundamentals", res.Title)
	assert.Equal(t, "May 5, 2024 10:30AM UTC", res.CompletionDate)
	assert.Equal(t, "1a2b3c4d-5e6f7a", res.CertificateID)
	assert.Empty(t, res.Instructors)
	assert.Empty(t, res.Skills)
}

func TestCybrary_SlashDate(t *testing.T) {
	text := "provided by Cybrary in Linux Basics Date 3/14/2024 C-0a1b2c3d-4e5f6a"
	res, ok := Cybrary{}.Match(text, "")
	require.True(t, ok)
	assert.Equal(t, "3/14/2024", res.CompletionDate)
}

func TestDeepLearningAI_Match(t *testing.T) {
	res, ok := DeepLearningAI{}.Match(normalize.Text(dlaiText), "2024-03-05-chatgpt.pdf")
	require.True(t, ok)
	assert.Equal(t, "Building Systems with the ChatGPT API", res.Title)
	assert.Equal(t, "2024-03-05", res.CompletionDate)
	assert.Equal(t, []string{"DeepLearning.AI"}, res.Instructors)
	assert.Empty(t, res.CertificateID)
}

func TestDeepLearningAI_SkillLines(t *testing.T) {
	text := "Congratulations on completing Prompt Engineering.\nPrompt Design\nAI\nLarge Models\nnot a skill"
	res, ok := DeepLearningAI{}.Match(text, "2023-07-01.pdf")
	require.True(t, ok)
	assert.Equal(t, "Prompt Engineering", res.Title)
	assert.Equal(t, []string{"Prompt Design", "Large Models"}, res.Skills)
}

func TestLinkedInLearning_Match(t *testing.T) {
	res, ok := LinkedInLearning{}.Match(normalize.Text(liText), "CertificateOfCompletion_Learning Python.pdf")
	require.True(t, ok)
	assert.Equal(t, "Learning Python", res.Title)
	assert.Equal(t, "May 5, 2024", res.CompletionDate)
	assert.Equal(t, "AbC123xYz", res.CertificateID)
	assert.Equal(t, []string{"Python", "Data Analysis"}, res.Skills)
}

func TestLinkedInLearning_TitleStopsAtUnderscore(t *testing.T) {
	res, ok := LinkedInLearning{}.Match("completed by Jan 9, 2023", "CertificateOfCompletion_Git Essentials_2023.pdf")
	require.True(t, ok)
	assert.Equal(t, "Git Essentials", res.Title)
	assert.Empty(t, res.CertificateID)
	assert.Empty(t, res.Skills)
}

// Dropping any one required field must yield no match, never a partial result.
func TestMatchers_MissingRequiredField(t *testing.T) {
	tests := []struct {
		name     string
		m        Matcher
		text     string
		filename string
	}{
		{"udemy no title anchor", Udemy{}, strings.Replace(udemyText, "completed the", "finished", 1), ""},
		{"udemy no date terminator", Udemy{}, "completed the Go course on May 5, 2024", ""},
		{"cybrary no title", Cybrary{}, strings.Replace(cybraryText, "provided by Cybrary in", "by", 1), ""},
		{"cybrary no date", Cybrary{}, "provided by Cybrary in Linux Date none C-0a1b2c3d-4e5f6a", ""},
		{"cybrary no id", Cybrary{}, strings.Replace(cybraryText, "C-1a2b3c4d-5e6f7a", "", 1), ""},
		{"dlai no title", DeepLearningAI{}, "Well done", "2024-03-05.pdf"},
		{"dlai no filename date", DeepLearningAI{}, dlaiText, "chatgpt.pdf"},
		{"dlai unterminated title", DeepLearningAI{}, "Congratulations on completing Building Systems Jane Doe", "2024-03-05.pdf"},
		{"linkedin no filename title", LinkedInLearning{}, liText, "certificate.pdf"},
		{"linkedin no date", LinkedInLearning{}, "Top skills covered Go", "CertificateOfCompletion_Go.pdf"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, ok := tc.m.Match(normalize.Text(tc.text), tc.filename)
			assert.False(t, ok)
			assert.Equal(t, Result{}, res)
		})
	}
}

func TestPrepass_TitleDate(t *testing.T) {
	var p Prepass = Udemy{}
	title, date, ok := p.TitleDate("This certifies that Jane completed the Rust Basics online course on March 5, 2024\nInstructor")
	require.True(t, ok)
	assert.Equal(t, "Rust Basics", title)
	assert.Equal(t, "March 5, 2024", date)

	p = Cybrary{}
	title, date, ok = p.TitleDate("provided by Cybrary in\nIntro to IT\nDate of Completion 04/09/2023")
	require.True(t, ok)
	assert.Equal(t, "Intro to IT", title)
	assert.Equal(t, "04/09/2023", date)

	_, _, ok = p.TitleDate("no anchors here")
	assert.False(t, ok)

	_, isPrepass := Matcher(LinkedInLearning{}).(Prepass)
	assert.False(t, isPrepass)
}
