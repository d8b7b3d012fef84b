package enricher

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"text/template"

	"gopkg.in/yaml.v3"
)

// SuppressedBlock replaces file content in prompts when the file is
// binary or unreadable. Raw bytes never reach a provider.
const SuppressedBlock = "[[binary content suppressed]]"

// PromptTemplate is the two-part chat prompt rendered for each file.
// Both parts are text/template bodies over promptData.
type PromptTemplate struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`

	sysTpl  *template.Template
	userTpl *template.Template
}

type promptData struct {
	Filename   string
	Path       string
	Filetype   string
	MimeType   string
	Filesize   string
	OS         string
	ChunkOne   string
	ChunkTwo   string
	ChunkThree string
}

// DefaultPromptTemplate is the built-in template used when no template
// file is installed. `dirdocs init` writes it out for editing.
const DefaultPromptTemplate = `system: |
  You are a concise technical writer. You describe files for a directory
  documentation index. Respond with a single JSON object and nothing else:
  {"description": "...", "joy_score": <0-10>, "emoji": "..."}
  The description is one or two sentences about what the file is for.
  Do not begin the description with phrases like "This file" or "Contains".
user: |
  Describe this file.

  filename: {{.Filename}}
  path: {{.Path}}
  type: {{.Filetype}}
  mime: {{.MimeType}}
  size: {{.Filesize}}
  os: {{.OS}}

  Opening of the file:
  {{.ChunkOne}}

  Middle of the file:
  {{.ChunkTwo}}

  End of the file:
  {{.ChunkThree}}
`

// LoadPromptTemplate reads and parses a yaml template file.
func LoadPromptTemplate(path string) (*PromptTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template: %w", err)
	}
	return ParsePromptTemplate(data)
}

// ParsePromptTemplate parses yaml template bytes.
func ParsePromptTemplate(data []byte) (*PromptTemplate, error) {
	var pt PromptTemplate
	if err := yaml.Unmarshal(data, &pt); err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	if pt.User == "" {
		return nil, fmt.Errorf("prompt template has no user section")
	}
	if err := pt.compile(); err != nil {
		return nil, err
	}
	return &pt, nil
}

// MustDefaultTemplate returns the parsed built-in template.
func MustDefaultTemplate() *PromptTemplate {
	pt, err := ParsePromptTemplate([]byte(DefaultPromptTemplate))
	if err != nil {
		panic(fmt.Sprintf("built-in prompt template invalid: %v", err))
	}
	return pt
}

func (pt *PromptTemplate) compile() error {
	var err error
	pt.sysTpl, err = template.New("system").Parse(pt.System)
	if err != nil {
		return fmt.Errorf("compile system template: %w", err)
	}
	pt.userTpl, err = template.New("user").Parse(pt.User)
	if err != nil {
		return fmt.Errorf("compile user template: %w", err)
	}
	return nil
}

// Render fills both template parts from a request. Up to three excerpt
// chunks map onto the opening/middle/end slots; missing slots render
// empty, and binary requests render the suppressed-content marker.
func (pt *PromptTemplate) Render(req Request) (system, user string, err error) {
	data := promptData{
		Filename: req.Filename,
		Path:     req.Path,
		Filetype: req.Filetype,
		MimeType: req.MimeType,
		Filesize: strconv.FormatInt(req.Size, 10),
		OS:       runtime.GOOS,
	}

	if req.Binary {
		data.ChunkOne = SuppressedBlock
	} else {
		slots := []*string{&data.ChunkOne, &data.ChunkTwo, &data.ChunkThree}
		for i, chunk := range req.Excerpt {
			if i >= len(slots) {
				break
			}
			*slots[i] = sanitizePromptText(chunk)
		}
	}

	var buf bytes.Buffer
	if err := pt.sysTpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render system prompt: %w", err)
	}
	system = buf.String()

	buf.Reset()
	if err := pt.userTpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render user prompt: %w", err)
	}
	return system, buf.String(), nil
}

// sanitizePromptText drops control characters that break prompt
// rendering, keeping ordinary whitespace.
func sanitizePromptText(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			out = append(out, r)
		case r < 0x20 || r == 0x7f:
			// drop
		case r == '\u2028' || r == '\u2029' || r == '\ufeff':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
