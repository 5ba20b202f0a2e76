package form

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//helper start mock browser
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pw, browser, page
}

const mockFormHTML = `<html><body>
<form>
  <label for="first_name">First Name *</label>
  <input id="first_name" type="text" aria-required="true">

  <label for="office">Preferred Office</label>
  <select id="office">
    <option>New York</option>
    <option>London</option>
  </select>

  <span id="degree-label">Degree</span>
  <input id="degree" class="select__input" role="combobox" aria-labelledby="degree-label">

  <input id="resume" type="file">

  <textarea id="question_1" aria-label="Tell us about yourself"></textarea>

  <input type="text" name="no-id-here">
  <input type="submit" value="Submit Application">
</form>
</body></html>`

func TestDiscoverMockForm(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	//route everything back to the mock form
	page.Route("**/*", func(route playwright.Route) {
		route.Fulfill(playwright.RouteFulfillOptions{
			Status: playwright.Int(200),
			Body:   mockFormHTML,
		})
	})

	_, err := page.Goto("https://boards.greenhouse.io/acme/jobs/1")
	require.NoError(t, err)

	fields := Discover(page)

	byID := map[string]Field{}
	for _, f := range fields {
		byID[f.ID] = f
	}

	//the submit input has no id and the nameless text input is skipped
	assert.Len(t, fields, 5)

	first := byID["first_name"]
	assert.Equal(t, CategoryText, first.Category)
	assert.Equal(t, "First Name *", first.Label)
	assert.True(t, first.Required)

	assert.Equal(t, CategorySelect, byID["office"].Category)
	assert.Equal(t, "Preferred Office", byID["office"].Label)

	//the combobox class wins over the input tag
	degree := byID["degree"]
	assert.Equal(t, CategoryCombobox, degree.Category)
	assert.Equal(t, "Degree", degree.Label)

	assert.Equal(t, CategoryFile, byID["resume"].Category)

	q := byID["question_1"]
	assert.Equal(t, CategoryText, q.Category)
	assert.Equal(t, "Tell us about yourself", q.Label)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		attrs    map[string]string
		expected Category
	}{
		{"Plain text input", "input", map[string]string{"type": "text"}, CategoryText},
		{"Typeless input", "input", map[string]string{}, CategoryText},
		{"Email input", "input", map[string]string{"type": "email"}, CategoryText},
		{"File input", "input", map[string]string{"type": "file"}, CategoryFile},
		{"Checkbox is unknown", "input", map[string]string{"type": "checkbox"}, CategoryUnknown},
		{"Native select", "select", map[string]string{}, CategorySelect},
		{"Textarea", "textarea", map[string]string{}, CategoryText},
		{"Combobox marker beats tag", "input", map[string]string{"type": "text", "class": "select__input select__input--focused"}, CategoryCombobox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.tag, tt.attrs))
		})
	}
}
