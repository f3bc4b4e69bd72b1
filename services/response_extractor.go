package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"backend/models"
	"backend/utils"
)

var codeFencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON recovers a JSON object from free-form model output. Models
// routinely wrap JSON in prose or markdown fences, so strategies are tried
// in order of strictness: whole-text parse, fenced code block, then the
// substring between the first '{' and the last '}'. When nothing parses the
// raw text is wrapped as {"text": raw} — a degraded but non-fatal outcome.
func ExtractJSON(raw string) map[string]any {
	candidate, ok := extractJSONCandidate(raw)
	if ok {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return parsed
		}
	}

	utils.Logger.Warnw("failed to parse JSON from model content, using raw text",
		"contentLength", len(raw))
	return map[string]any{"text": raw}
}

// DecodeNutritionAnalysis runs the same recovery strategies but decodes into
// the typed schema the extraction prompt demands. ok is false when no valid
// JSON object could be recovered at all.
func DecodeNutritionAnalysis(raw string) (*models.NutritionAnalysis, bool) {
	candidate, ok := extractJSONCandidate(raw)
	if !ok {
		return nil, false
	}
	var analysis models.NutritionAnalysis
	if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
		return nil, false
	}
	return &analysis, true
}

// extractJSONCandidate returns the first substring of raw that parses as a
// JSON object.
func extractJSONCandidate(raw string) (string, bool) {
	if isJSONObject(raw) {
		return raw, true
	}

	if m := codeFencePattern.FindStringSubmatch(raw); m != nil {
		inner := strings.TrimSpace(m[1])
		if isJSONObject(inner) {
			return inner, true
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		sub := raw[start : end+1]
		if isJSONObject(sub) {
			return sub, true
		}
	}

	return "", false
}

func isJSONObject(s string) bool {
	var parsed map[string]any
	return json.Unmarshal([]byte(s), &parsed) == nil
}
