package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-greenhouse-autopilot/internal/ai"
	"go-greenhouse-autopilot/internal/form"
	"go-greenhouse-autopilot/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver records every browser primitive call instead of driving a page.
type fakeDriver struct {
	filled        map[string]string
	uploaded      map[string]string
	comboOptions  map[string][]string
	nativeOptions map[string][]string
	clicked       []string
	selected      map[string]string
	failFill      map[string]error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		filled:        map[string]string{},
		uploaded:      map[string]string{},
		comboOptions:  map[string][]string{},
		nativeOptions: map[string][]string{},
		selected:      map[string]string{},
		failFill:      map[string]error{},
	}
}

func (d *fakeDriver) FillByID(id, value string) error {
	if err := d.failFill[id]; err != nil {
		return err
	}
	d.filled[id] = value
	return nil
}

func (d *fakeDriver) OpenAndListOptions(id string) ([]string, error) {
	return d.comboOptions[id], nil
}

func (d *fakeDriver) ClickOptionByText(label string) error {
	d.clicked = append(d.clicked, label)
	return nil
}

func (d *fakeDriver) NativeOptionLabels(id string) ([]string, error) {
	return d.nativeOptions[id], nil
}

func (d *fakeDriver) SelectNativeOption(id, label string) error {
	d.selected[id] = label
	return nil
}

func (d *fakeDriver) UploadFile(id, path string) error {
	d.uploaded[id] = path
	return nil
}

type fakeLLM struct {
	optionAnswer string
	optionErr    error
	textAnswer   string
	textErr      error
	optionCalls  int
	textCalls    int
}

func (f *fakeLLM) SelectOption(ctx context.Context, question string, options []string, cand *profile.ApplicationProfile) (string, error) {
	f.optionCalls++
	return f.optionAnswer, f.optionErr
}

func (f *fakeLLM) GenerateAnswer(ctx context.Context, question string, cand *profile.ApplicationProfile) (string, error) {
	f.textCalls++
	return f.textAnswer, f.textErr
}

func testCandidate() *profile.ApplicationProfile {
	end := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	return &profile.ApplicationProfile{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Phone:       "555-0101",
		LinkedinURL: "https://linkedin.com/in/ada",
		Education: profile.EducationInfo{
			University: "Analytical University",
			Degree:     "BSc",
			Field:      "Computer Science",
			EndDate:    &end,
		},
	}
}

func TestFillAllDirectMapping(t *testing.T) {
	drv := newFakeDriver()
	llm := &fakeLLM{}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "first_name", Category: form.CategoryText},
		{ID: "last_name", Category: form.CategoryText},
		{ID: "email", Category: form.CategoryText},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, "Ada", drv.filled["first_name"])
	assert.Equal(t, "Lovelace", drv.filled["last_name"])
	assert.Equal(t, "ada@example.com", drv.filled["email"])
	assert.Equal(t, 0, llm.optionCalls, "mapped fields must not reach the model")
	assert.Equal(t, 0, llm.textCalls)
	assert.Equal(t, "Ada", sub.Values["first_name"])
}

func TestFillAllVerbatimURL(t *testing.T) {
	drv := newFakeDriver()
	llm := &fakeLLM{textAnswer: "a generated essay about my linkedin"}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "question_123", Category: form.CategoryText, Label: "LinkedIn Profile"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/ada", drv.filled["question_123"])
	assert.Equal(t, 0, llm.textCalls, "url fields are filled verbatim, never generated")
}

func TestFillAllCombobox(t *testing.T) {
	drv := newFakeDriver()
	drv.comboOptions["degree"] = []string{"High School", "Bachelor's Degree", "Master's Degree"}
	llm := &fakeLLM{optionAnswer: "Bachelor's Degree"}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "degree", Category: form.CategoryCombobox, Label: "Degree"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, []string{"Bachelor's Degree"}, drv.clicked)
	assert.Equal(t, "Bachelor's Degree", sub.Values["degree"])
}

func TestFillAllNativeSelect(t *testing.T) {
	drv := newFakeDriver()
	drv.nativeOptions["office"] = []string{"New York", "London"}
	llm := &fakeLLM{optionAnswer: "London"}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "office", Category: form.CategorySelect, Label: "Preferred office"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, "London", drv.selected["office"])
	assert.Empty(t, drv.clicked)
}

func TestFillAllChoiceSurvivesModelFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.comboOptions["veteran_status"] = []string{"I am a protected veteran", "I am not a protected veteran"}
	llm := &fakeLLM{optionErr: errors.New("model unavailable")}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "veteran_status", Category: form.CategoryCombobox, Label: "Veteran Status"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, "I am not a protected veteran", sub.Values["veteran_status"])
}

func TestFillAllFreeText(t *testing.T) {
	drv := newFakeDriver()
	llm := &fakeLLM{textAnswer: "  I built a compiler for fun.  "}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "question_999", Category: form.CategoryText, Label: "Tell us about a project"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Equal(t, "I built a compiler for fun.", drv.filled["question_999"])
}

func TestFillAllSkipsEmptyAnswer(t *testing.T) {
	drv := newFakeDriver()
	llm := &fakeLLM{textAnswer: "   "}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "question_1", Category: form.CategoryText, Label: "Anything to add?"},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err)
	assert.Empty(t, drv.filled)
	assert.Empty(t, sub.Values)
}

func TestFillAllContinuesAfterFieldFailure(t *testing.T) {
	drv := newFakeDriver()
	drv.failFill["first_name"] = fmt.Errorf("element detached")
	llm := &fakeLLM{}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	fields := []form.Field{
		{ID: "first_name", Category: form.CategoryText},
		{ID: "last_name", Category: form.CategoryText},
	}

	err := r.FillAll(context.Background(), drv, fields, testCandidate(), sub)

	require.NoError(t, err, "one broken field must not abort the rest")
	assert.Equal(t, "Lovelace", drv.filled["last_name"])
	_, ok := sub.Values["first_name"]
	assert.False(t, ok)
}

func TestFillAllResumeUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake resume"))
	}))
	defer srv.Close()

	drv := newFakeDriver()
	llm := &fakeLLM{}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	cand := testCandidate()
	cand.ResumeURL = srv.URL + "/resume.pdf"

	fields := []form.Field{
		{ID: "resume", Category: form.CategoryFile},
	}

	err := r.FillAll(context.Background(), drv, fields, cand, sub)

	require.NoError(t, err)
	path, ok := drv.uploaded["resume"]
	require.True(t, ok)
	//temp file is cleaned up after the upload call
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, cand.ResumeURL, sub.Values["resume"])
}

func TestFillAllResumeFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	drv := newFakeDriver()
	llm := &fakeLLM{}
	r := New(llm, ai.DefaultPolicy())
	sub := NewSubmission()

	cand := testCandidate()
	cand.ResumeURL = srv.URL + "/gone.pdf"

	fields := []form.Field{
		{ID: "resume", Category: form.CategoryFile},
		{ID: "first_name", Category: form.CategoryText},
	}

	err := r.FillAll(context.Background(), drv, fields, cand, sub)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume")
	assert.Empty(t, drv.filled, "nothing after the resume should have been touched")
}

func TestDirectMappingDropsEmptyValues(t *testing.T) {
	cand := testCandidate()
	cand.Phone = ""

	m := directMapping(cand)

	_, ok := m["phone"]
	assert.False(t, ok)
	assert.Equal(t, "BSc in Computer Science from Analytical University", m["education"])
	assert.Equal(t, "2026-05-15", m["graduation_date"])
}
