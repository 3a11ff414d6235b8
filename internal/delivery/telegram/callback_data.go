package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionJourney  = "journey"
	actionCategory = "cat"
	actionToggle   = "tog"
	actionStats    = "stats"
	actionHistory  = "hist"
	actionImage    = "img"
	actionReset    = "reset"
)

// Image sub-actions.
const (
	imageGenerate   = "gen"
	imageRegenerate = "regen"
	imageShow       = "show"
)

// Reset sub-actions.
const (
	resetAsk     = "ask"
	resetConfirm = "confirm"
	resetCancel  = "cancel"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns params[i] as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i < 0 || i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildJourneyCallback() string {
	return actionJourney
}

func buildStatsCallback() string {
	return actionStats
}

// buildCategoryCallback builds callback data for opening the checklist of a category.
func buildCategoryCallback(categoryIdx int) string {
	return callbackData{
		Action: actionCategory,
		Params: []string{strconv.Itoa(categoryIdx)},
	}.encode()
}

// buildToggleCallback builds callback data for toggling a checklist item.
func buildToggleCallback(itemID int) string {
	return callbackData{
		Action: actionToggle,
		Params: []string{strconv.Itoa(itemID)},
	}.encode()
}

// buildHistoryCallback builds callback data for browsing a reached stage.
func buildHistoryCallback(stage int) string {
	return callbackData{
		Action: actionHistory,
		Params: []string{strconv.Itoa(stage)},
	}.encode()
}

func buildImageCallback(subAction string) string {
	return callbackData{Action: actionImage, Params: []string{subAction}}.encode()
}

func buildShowImageCallback(stage int) string {
	return callbackData{
		Action: actionImage,
		Params: []string{imageShow, strconv.Itoa(stage)},
	}.encode()
}

func buildResetCallback(subAction string) string {
	return callbackData{Action: actionReset, Params: []string{subAction}}.encode()
}
