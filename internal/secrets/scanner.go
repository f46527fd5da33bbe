package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aura-cli/aura/internal/workspace"
)

// Kind classifies a credential pattern.
type Kind string

const (
	KindAWSAccessKey Kind = "AWS Access Key"
	KindGoogleAPIKey Kind = "Google API Key"
)

// envFileMode is the only acceptable permission set for .env files.
const envFileMode = os.FileMode(0600)

// Finding is a located credential-pattern match in file content.
type Finding struct {
	Path  string
	Kind  Kind
	Value string
}

// Masked returns the finding value safe for display: the first 8
// characters followed by "..." when the value is longer than that.
func (f Finding) Masked() string {
	if len(f.Value) > 8 {
		return f.Value[:8] + "..."
	}
	return f.Value
}

// EnvPermissionIssue reports a .env file whose mode is not exactly 0600.
type EnvPermissionIssue struct {
	Path string
	Mode os.FileMode
}

// Expected returns the mode .env files should carry.
func (EnvPermissionIssue) Expected() os.FileMode { return envFileMode }

// Report holds the structured output of one secret scan.
type Report struct {
	Findings  []Finding
	EnvIssues []EnvPermissionIssue
}

// credentialPattern pairs a kind with its regular expression and the
// character class a true match must not be followed by. The trailing-class
// guard rejects runs longer than the credential's fixed length.
type credentialPattern struct {
	kind  Kind
	re    *regexp.Regexp
	class *regexp.Regexp
}

var credentialPatterns = []credentialPattern{
	{
		kind:  KindAWSAccessKey,
		re:    regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		class: regexp.MustCompile(`[0-9A-Z]`),
	},
	{
		kind:  KindGoogleAPIKey,
		re:    regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
		class: regexp.MustCompile(`[0-9A-Za-z_-]`),
	},
}

// Scanner pattern-matches file contents for leaked credentials and
// checks .env permission bits. It has no side effects of its own;
// masking and advisory prose belong to the display layer.
type Scanner struct {
	walker *workspace.Walker
	logger zerolog.Logger
}

// NewScanner creates a secret scanner over the given workspace root.
func NewScanner(rootPath string, logger zerolog.Logger) (*Scanner, error) {
	w, err := workspace.NewWalker(rootPath, logger)
	if err != nil {
		return nil, fmt.Errorf("creating walker: %w", err)
	}
	return &Scanner{walker: w, logger: logger}, nil
}

// Walker exposes the underlying walker so callers can extend exclusions.
func (s *Scanner) Walker() *workspace.Walker { return s.walker }

// Scan walks the workspace and returns every credential match and every
// .env permission violation. Unreadable files are skipped; a wrong-mode
// .env file is reported even when its content matches nothing.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	records, err := s.walker.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning for secrets: %w", err)
	}

	report := &Report{}
	for _, rec := range records {
		if isEnvFile(rec.Path) && rec.Mode.Perm() != envFileMode {
			report.EnvIssues = append(report.EnvIssues, EnvPermissionIssue{
				Path: rec.Path,
				Mode: rec.Mode.Perm(),
			})
		}

		data, err := os.ReadFile(rec.Path)
		if err != nil {
			s.logger.Debug().Str("path", rec.Path).Err(err).Msg("skipping unreadable file")
			continue
		}

		// Malformed bytes are dropped, not fatal. Dropping can splice a
		// credential back together across invalid bytes, matching how a
		// tolerant text decode would read the file.
		content := strings.ToValidUTF8(string(data), "")

		for _, p := range credentialPatterns {
			for _, value := range findExact(p, content) {
				report.Findings = append(report.Findings, Finding{
					Path:  rec.Path,
					Kind:  p.kind,
					Value: value,
				})
			}
		}
	}

	return report, nil
}

// findExact returns non-overlapping matches of p.re whose trailing edge
// is not glued to more characters of the credential's class. A run of 17
// upper-alphanumerics after "AKIA" is not a key.
func findExact(p credentialPattern, content string) []string {
	var values []string
	for _, loc := range p.re.FindAllStringIndex(content, -1) {
		end := loc[1]
		if end < len(content) && p.class.MatchString(content[end:end+1]) {
			continue
		}
		values = append(values, content[loc[0]:end])
	}
	return values
}

// isEnvFile reports whether a path names an environment file: the base
// name is ".env" or ends in ".env" (e.g. "prod.env").
func isEnvFile(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasSuffix(base, ".env")
}
