package challenges

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkotenko/challenger/internal/domain"
	"github.com/dkotenko/challenger/internal/dto"
	"github.com/dkotenko/challenger/internal/service/challengeservice"
	"github.com/dkotenko/challenger/pkg/auth"
	"github.com/dkotenko/challenger/pkg/utils"
)

//go:generate mockgen -source=challenges.go -destination=mock_challenges.go -package=challenges

type Service interface {
	CreateChallenge(ctx context.Context, creatorID int, in challengeservice.CreateChallengeInput) (*domain.Challenge, error)
	ListChallenges(ctx context.Context, groupID *int, sweepLimit uint32) ([]domain.Challenge, error)
	GetChallenge(ctx context.Context, challengeID int) (*domain.Challenge, error)
	PlaceBet(ctx context.Context, userID, challengeID int, betType string, amount int64) (*domain.Bet, error)
	SubmitProof(ctx context.Context, userID, challengeID int, imageURL, description string) (*domain.Challenge, error)
	CastVote(ctx context.Context, userID, challengeID int, choice string) error
	GetUserBets(ctx context.Context, userID int) ([]domain.Bet, error)
	Phase(ch *domain.Challenge) challengeservice.Phase
}

const listSweepLimit = 100

type ChallengeHandler struct {
	challengeService Service
}

func New(challengeService Service) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// Create godoc
//
//	@Summary		Create a challenge
//	@Description	Open a new challenge with a future deadline; peers bet on whether the creator completes it
//	@Tags			Челленджи
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateChallengeRequestDTO	true	"Challenge payload"
//	@Success		201		{object}	dto.ChallengeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		422		{object}	utils.Response	"Invalid challenge parameters"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges [post]
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateChallengeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ch, err := h.challengeService.CreateChallenge(r.Context(), userID, challengeservice.CreateChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		MinimumBet:  req.MinimumBet,
		Deadline:    req.Deadline,
		GroupID:     req.GroupID,
		IsGlobal:    req.IsGlobal,
	})
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, h.toDTO(ch))
}

// List godoc
//
//	@Summary		List challenges
//	@Description	List global challenges, or a group's challenges when group is given; stuck challenges are reconciled first
//	@Tags			Челленджи
//	@Security		BearerAuth
//	@Produce		json
//	@Param			group	query		int	false	"Group id"
//	@Success		200		{array}		dto.ChallengeResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges [get]
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	var groupID *int
	if raw := r.URL.Query().Get("group"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid group id")
			return
		}
		groupID = &id
	}

	challenges, err := h.challengeService.ListChallenges(r.Context(), groupID, listSweepLimit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.ChallengeResponseDTO, len(challenges))
	for i, ch := range challenges {
		response[i] = h.toDTO(&ch)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get a challenge
//	@Description	Fetch one challenge with its derived phase and, once completed, the vote tally
//	@Tags			Челленджи
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Challenge id"
//	@Success		200	{object}	dto.ChallengeResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Challenge not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id} [get]
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	challengeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	ch, err := h.challengeService.GetChallenge(r.Context(), challengeID)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.toDTO(ch))
}

// PlaceBet godoc
//
//	@Summary		Place a bet
//	@Description	Wager points on yes or no while betting is open; one bet per user per challenge
//	@Tags			Ставки
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Challenge id"
//	@Param			request	body		dto.PlaceBetRequestDTO	true	"Bet payload"
//	@Success		201		{object}	dto.BetResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Challenge not found"
//	@Failure		409		{object}	utils.Response	"Betting closed or bet already placed"
//	@Failure		422		{object}	utils.Response	"Invalid bet"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id}/bets [post]
func (h *ChallengeHandler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	challengeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req dto.PlaceBetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bet, err := h.challengeService.PlaceBet(r.Context(), userID, challengeID, req.BetType, req.Amount)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toBetDTO(bet))
}

// SubmitProof godoc
//
//	@Summary		Submit proof
//	@Description	Creator submits completion proof inside the post-deadline window, which opens voting
//	@Tags			Челленджи
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Challenge id"
//	@Param			request	body		dto.SubmitProofRequestDTO	true	"Proof payload"
//	@Success		200		{object}	dto.ChallengeResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not the creator"
//	@Failure		404		{object}	utils.Response	"Challenge not found"
//	@Failure		409		{object}	utils.Response	"Outside proof window or proof already set"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id}/proof [post]
func (h *ChallengeHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	challengeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req dto.SubmitProofRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ch, err := h.challengeService.SubmitProof(r.Context(), userID, challengeID, req.ImageURL, req.Description)
	if err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.toDTO(ch))
}

// CastVote godoc
//
//	@Summary		Vote on proof
//	@Description	Bettors other than the creator vote yes/no on the submitted proof; revoting overwrites
//	@Tags			Челленджи
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Challenge id"
//	@Param			request	body		dto.CastVoteRequestDTO	true	"Vote payload"
//	@Success		200		{string}	string	"Vote recorded"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not eligible to vote"
//	@Failure		404		{object}	utils.Response	"Challenge not found"
//	@Failure		409		{object}	utils.Response	"Voting closed"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id}/votes [post]
func (h *ChallengeHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	challengeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req dto.CastVoteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.challengeService.CastVote(r.Context(), userID, challengeID, req.Vote); err != nil {
		h.respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, "vote recorded")
}

// GetUserBets godoc
//
//	@Summary		Get own bets
//	@Description	List the authenticated user's bets with settled payouts where available
//	@Tags			Ставки
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.BetResponseDTO
//	@Success		204	{object}	utils.Response	"No bets"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/bets [get]
func (h *ChallengeHandler) GetUserBets(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	bets, err := h.challengeService.GetUserBets(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bets")
		return
	}
	if len(bets) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Bets not found")
		return
	}

	response := make([]dto.BetResponseDTO, len(bets))
	for i, bet := range bets {
		response[i] = toBetDTO(&bet)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *ChallengeHandler) respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrWrongPhase), errors.Is(err, domain.ErrDuplicateBet):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotCreator), errors.Is(err, domain.ErrNotEligible):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, challengeservice.ErrInvalidChallenge),
		errors.Is(err, challengeservice.ErrInvalidBetType),
		errors.Is(err, challengeservice.ErrInvalidVote):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *ChallengeHandler) toDTO(ch *domain.Challenge) dto.ChallengeResponseDTO {
	return dto.ChallengeResponseDTO{
		ID:           ch.ID,
		CreatorID:    ch.CreatorID,
		GroupID:      ch.GroupID,
		IsGlobal:     ch.IsGlobal,
		Title:        ch.Title,
		Description:  ch.Description,
		MinimumBet:   ch.MinimumBet,
		Deadline:     ch.Deadline,
		Status:       ch.Status,
		Phase:        string(h.challengeService.Phase(ch)),
		ProofURL:     ch.ProofImageURL,
		VotingEndsAt: ch.VotingEndsAt,
		TotalYesBets: ch.TotalYesBets,
		TotalNoBets:  ch.TotalNoBets,
		IsCompleted:  ch.IsCompleted,
		YesVotes:     ch.YesVotes,
		NoVotes:      ch.NoVotes,
		CreatedAt:    ch.CreatedAt,
	}
}

func toBetDTO(bet *domain.Bet) dto.BetResponseDTO {
	return dto.BetResponseDTO{
		ID:          bet.ID,
		ChallengeID: bet.ChallengeID,
		BetType:     bet.BetType,
		Amount:      bet.Amount,
		Payout:      bet.Payout,
		CreatedAt:   bet.CreatedAt,
	}
}
