package controllers

import (
	"os"
	"strings"

	"PlayoffPredictor/bracket"
	"PlayoffPredictor/feed"
	"PlayoffPredictor/models"
	"PlayoffPredictor/responses"
)

// loadField returns the stored playoff field, falling back to the static
// one when the table is empty so the bracket can always render.
func (server *Server) loadField() (bracket.Field, error) {
	teamModel := models.PlayoffTeam{}
	field, err := teamModel.LoadField(server.DB)
	if err != nil {
		return nil, err
	}
	if !field.Complete() {
		return feed.FallbackField(), nil
	}
	return field, nil
}

// playoffsLocked reports whether picks are frozen. The bracket locks once
// the first real result lands, or earlier via the PLAYOFFS_LOCKED switch.
func (server *Server) playoffsLocked() (bool, error) {
	if strings.EqualFold(os.Getenv("PLAYOFFS_LOCKED"), "true") {
		return true, nil
	}
	resultModel := models.GameResult{}
	count, err := resultModel.CountResults(server.DB)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// gradedPicks classifies a pick set against the recorded results in a
// stable slot order.
func gradedPicks(picks bracket.PickSet, field bracket.Field, results bracket.ResultSet) []responses.PickStatusResponse {
	statuses := bracket.ClassifyAll(picks, field, results)

	graded := make([]responses.PickStatusResponse, 0, len(picks))
	for _, slot := range bracket.AllSlots() {
		teamID, ok := picks[slot]
		if !ok {
			continue
		}
		graded = append(graded, responses.PickStatusResponse{
			Conference: string(slot.Conference),
			Round:      int(slot.Round),
			Game:       slot.Game,
			TeamID:     teamID,
			Status:     statuses[slot],
		})
	}
	return graded
}

func (server *Server) bracketViewFor(uid uint) (*responses.BracketViewResponse, error) {
	field, err := server.loadField()
	if err != nil {
		return nil, err
	}

	pickModel := models.Pick{}
	picks, err := pickModel.PickSetFor(server.DB, uid)
	if err != nil {
		return nil, err
	}

	resultModel := models.GameResult{}
	results, err := resultModel.ResultSet(server.DB)
	if err != nil {
		return nil, err
	}

	locked, err := server.playoffsLocked()
	if err != nil {
		return nil, err
	}

	return &responses.BracketViewResponse{
		Bracket:  bracket.DeriveBracket(field, picks),
		Champion: bracket.Champion(field, picks),
		Picks:    gradedPicks(picks, field, results),
		Locked:   locked,
	}, nil
}
