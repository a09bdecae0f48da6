package models

import (
	"errors"
	"fmt"
	"strings"
)

// Language is the declared language of a submitted snippet
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
)

// Languages lists the selectable languages in display order
var Languages = []Language{LanguagePython, LanguageJava, LanguageJavaScript}

// DetailLevel controls how verbose the model is asked to be
type DetailLevel string

const (
	DetailBrief    DetailLevel = "Brief"
	DetailDetailed DetailLevel = "Detailed"
)

// DetailLevels lists the selectable detail levels in display order
var DetailLevels = []DetailLevel{DetailBrief, DetailDetailed}

// RequestType selects what the tool does with a snippet
type RequestType string

const (
	RequestExplainer      RequestType = "Explainer"
	RequestRefactoring    RequestType = "Refactoring"
	RequestUnitTests      RequestType = "Unit Test Cases"
	RequestQualityMetrics RequestType = "Code Quality Metrics"
)

// RequestTypes lists the selectable request types in display order
var RequestTypes = []RequestType{RequestExplainer, RequestRefactoring, RequestUnitTests, RequestQualityMetrics}

var (
	ErrInvalidLanguage    = errors.New("invalid language")
	ErrInvalidDetailLevel = errors.New("invalid detail level")
	ErrInvalidRequestType = errors.New("invalid request type")
)

// ParseLanguage matches s case-insensitively against the supported languages
func ParseLanguage(s string) (Language, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages {
		if string(l) == v {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, s)
}

// ParseDetailLevel matches s case-insensitively against the detail levels
func ParseDetailLevel(s string) (DetailLevel, error) {
	v := strings.TrimSpace(s)
	for _, d := range DetailLevels {
		if strings.EqualFold(string(d), v) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDetailLevel, s)
}

// ParseRequestType requires an exact match on one of the request type labels
func ParseRequestType(s string) (RequestType, error) {
	for _, r := range RequestTypes {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRequestType, s)
}

// CodeSubmission is the transient input of a single analysis request
type CodeSubmission struct {
	Code        string      `json:"code"`
	Language    Language    `json:"language"`
	DetailLevel DetailLevel `json:"detail_level"`
	RequestType RequestType `json:"request_type"`
}

// NewCodeSubmission validates the raw form values and builds a submission
func NewCodeSubmission(code, language, detailLevel, requestType string) (CodeSubmission, error) {
	lang, err := ParseLanguage(language)
	if err != nil {
		return CodeSubmission{}, err
	}
	detail, err := ParseDetailLevel(detailLevel)
	if err != nil {
		return CodeSubmission{}, err
	}
	reqType, err := ParseRequestType(requestType)
	if err != nil {
		return CodeSubmission{}, err
	}
	return CodeSubmission{
		Code:        code,
		Language:    lang,
		DetailLevel: detail,
		RequestType: reqType,
	}, nil
}
