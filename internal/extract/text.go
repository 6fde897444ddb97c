package extract

import (
	"fmt"
	"strings"

	"github.com/jimezsa/jobtrack/internal/models"
	"github.com/rs/zerolog"
)

const titleScanWindow = 8

// TextExtractor recovers posting fields from text copied off a job page.
// It relies on line order and a few layout conventions only.
type TextExtractor struct {
	logger zerolog.Logger
	stages []textStage
}

// textStage is one heuristic pass over the pasted lines.
type textStage func(*textState)

// textStages run in precedence order.
var textStages = []textStage{
	(*textState).applyLabelBlocks,
	(*textState).scanLogoAnchor,
	(*textState).scanLabeledFallback,
	(*textState).scanMeaningfulLines,
	(*textState).scanWholeText,
	(*textState).settleLocation,
}

func NewTextExtractor(logger zerolog.Logger) *TextExtractor {
	return &TextExtractor{logger: logger, stages: textStages}
}

type textState struct {
	lines   []string
	cleaned string

	position string
	company  string
	location string
	salary   string
	jobType  string
	remote   string
}

func (s *textState) fields() models.RawFields {
	return models.RawFields{
		Title:    s.position,
		Company:  s.company,
		Location: s.location,
		Salary:   s.salary,
		JobType:  s.jobType,
		Remote:   s.remote,
	}
}

// Extract runs the heuristics in fixed precedence. Earlier stages win; a
// later stage only fills what is still empty.
func (e *TextExtractor) Extract(text string, pageURL string) (fields models.RawFields) {
	logger := e.logger.With().Str("url", pageURL).Logger()
	state := &textState{}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("text parse failed")
			fields = state.fields()
			fields.Notes = fmt.Sprintf("Parsing error: %v", r)
		}
	}()

	state.lines = splitLines(text)
	state.cleaned = strings.Join(state.lines, "\n")

	for _, stage := range e.stages {
		stage(state)
	}

	logger.Debug().
		Str("title", state.position).
		Str("company", state.company).
		Str("location", state.location).
		Str("salary", state.salary).
		Msg("parsed pasted text")
	return state.fields()
}

func (s *textState) applyLabelBlocks() {
	s.applyLabels(labeledBlocks(s.lines))
}

func (s *textState) scanLogoAnchor() {
	logoIdx := s.scanLogo()
	if logoIdx >= 0 && s.position == "" {
		s.scanTitleAfterLogo(logoIdx)
	}
}

// scanWholeText fills what is still empty from the full text.
func (s *textState) scanWholeText() {
	if s.location == "" {
		s.location = FindLocation(s.cleaned)
	}
	if s.salary == "" {
		s.salary = FindSalaryWithUnit(s.cleaned)
	}
	if s.remote == "" {
		s.remote = ClassifyRemote(s.cleaned)
	}
	if s.jobType == "" {
		s.jobType = ClassifyJobType(s.cleaned)
	}
}

// settleLocation reduces the location to its City, ST part.
func (s *textState) settleLocation() {
	if loc := FindLocation(s.location); loc != "" {
		s.location = loc
	} else if loc := FindLocation(s.cleaned); loc != "" {
		s.location = loc
	}
}

func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// labeledBlocks maps each label line to the line that follows it.
func labeledBlocks(lines []string) map[string]string {
	labels := make(map[string]string)
	for i := 0; i < len(lines); {
		key := strings.ToLower(lines[i])
		if _, ok := fieldLabels[key]; ok {
			value := ""
			if i+1 < len(lines) {
				value = lines[i+1]
			}
			labels[key] = value
			i += 2
			continue
		}
		i++
	}
	return labels
}

func (s *textState) applyLabels(labels map[string]string) {
	if len(labels) == 0 {
		return
	}
	s.position = labels[labelPosition]
	s.company = labels[labelCompany]
	if value := labels[labelLocation]; value != "" {
		s.location = normalizeLocation(value, s.cleaned)
	}
	s.salary = labels[labelSalary]
	for _, key := range []string{labelJobType, labelJobTypeSpaced, labelEmploymentType} {
		if value := labels[key]; value != "" {
			s.jobType = value
			break
		}
	}
}

// scanLogo finds the first line mentioning "logo" and, when the company is
// unknown, reads it from a "<Name> logo" line.
func (s *textState) scanLogo() int {
	for i, line := range s.lines {
		if !strings.Contains(strings.ToLower(line), "logo") {
			continue
		}
		if s.company == "" {
			if match := logoLineRe.FindStringSubmatch(line); match != nil {
				name := strings.TrimSpace(match[1])
				if !IsNoise(name) && len(name) > 2 {
					s.company = name
				}
			}
		}
		return i
	}
	return -1
}

func (s *textState) scanTitleAfterLogo(logoIdx int) {
	start := logoIdx + 1
	end := min(start+titleScanWindow, len(s.lines))
	for _, line := range s.lines[start:end] {
		lower := strings.ToLower(line)
		switch {
		case postedRe.MatchString(lower), daysAgoRe.MatchString(lower), strings.Contains(lower, "apply by"):
			continue
		case s.company != "" && lower == strings.ToLower(s.company):
			continue
		case IsNoise(line), len(line) <= 3, isUpperLine(line), IsLocationLine(line):
			continue
		}
		s.position = line
		return
	}
}

func (s *textState) scanLabeledFallback() {
	lines := s.lines
	for i := 0; i < len(lines) && (s.position == "" || s.company == ""); {
		label := strings.ToLower(lines[i])
		hasNext := i+1 < len(lines)
		next := ""
		if hasNext {
			next = lines[i+1]
		}

		switch {
		case label == labelPosition && hasNext && s.position == "" && !IsNoise(next):
			s.position = next
		case label == labelCompany && hasNext && s.company == "" && !IsNoise(next):
			s.company = next
		case label == labelLocation:
			if s.location == "" {
				if loc := FindLocation(strings.Join(lines[i+1:], "\n")); loc != "" {
					s.location = loc
				} else {
					s.location = next
				}
			}
		case label == labelSalary && hasNext:
			if s.salary == "" {
				s.salary = next
			}
		case (label == labelJobType || label == labelJobTypeSpaced || label == labelEmploymentType) && hasNext:
			if s.jobType == "" {
				s.jobType = next
			}
		case label == labelRemote && hasNext:
			if s.remote == "" {
				s.remote = CanonicalRemote(next)
			}
		default:
			i++
			continue
		}
		i += 2
	}
}

func (s *textState) scanMeaningfulLines() {
	if s.position != "" && s.company != "" {
		return
	}

	var meaningful []string
	for _, line := range s.lines {
		lower := strings.ToLower(line)
		if _, isLabel := labelWords[lower]; isLabel {
			continue
		}
		if IsNoise(line) || len(line) <= 5 || containsAny(lower, skipKeywords) ||
			IsLocationLine(line) || strings.Contains(lower, "logo") {
			continue
		}
		meaningful = append(meaningful, line)
	}
	if len(meaningful) == 0 {
		return
	}

	if s.position == "" {
		s.position = meaningful[0]
		for _, line := range meaningful {
			lower := strings.ToLower(line)
			if containsAny(lower, titleKeywords) && !jobTypeWordRe.MatchString(lower) {
				s.position = line
				break
			}
		}
	}
	if s.company == "" && len(meaningful) > 1 {
		s.company = meaningful[1]
	}
}
