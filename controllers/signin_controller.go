package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/dailysign/middleware"
	"github.com/cppla/dailysign/services"
	"github.com/cppla/dailysign/utils"
)

// SignInController handles daily sign-in endpoints.
type SignInController struct {
	svc *services.Service
}

// NewSignInController creates a new controller instance.
func NewSignInController(svc *services.Service) *SignInController {
	return &SignInController{svc: svc}
}

type signInRequest struct {
	// Date is optional; empty means today, a past date is a supplement.
	Date string `json:"date"`
}

// DailySignIn records a sign-in (or supplement) and returns the granted reward.
func (s *SignInController) DailySignIn(ctx *gin.Context) {
	uid, ok := getUID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	// An empty body means "sign today".
	var req signInRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request body")
			return
		}
	}

	result, err := s.svc.Sign(ctx.Request.Context(), uid, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySigned):
			utils.Error(ctx, http.StatusBadRequest, 40030, "already signed in for this date")
		case errors.Is(err, services.ErrInvalidDate):
			utils.Error(ctx, http.StatusBadRequest, 40031, "invalid sign-in date")
		default:
			utils.Sugar.Warnf("sign-in failed uid=%s date=%s err=%v", uid, req.Date, err)
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to record sign-in")
		}
		return
	}

	// Cached month views for this user are stale now.
	utils.InvalidateByPrefix(cacheKeyPrefix(uid))

	utils.Success(ctx, result)
}

// SignInStatus returns the user's summary together with current ledger balances.
func (s *SignInController) SignInStatus(ctx *gin.Context) {
	uid, ok := getUID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	summary, exp, point, err := s.svc.Status(ctx.Request.Context(), uid)
	if err != nil {
		utils.Sugar.Warnf("sign-in status failed uid=%s err=%v", uid, err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load sign-in status")
		return
	}

	utils.Success(ctx, gin.H{
		"summary": summary,
		"exp":     exp,
		"point":   point,
	})
}

// RewardByDate looks up the reward recorded on a given date. Zeros when the
// user did not sign in that day; storage faults also degrade to zeros but are
// logged.
func (s *SignInController) RewardByDate(ctx *gin.Context) {
	uid, ok := getUID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	date := ctx.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid date")
		return
	}

	exp, point, err := s.svc.RewardByDate(ctx.Request.Context(), uid, date)
	if err != nil {
		utils.Sugar.Warnf("reward lookup failed uid=%s date=%s err=%v", uid, date, err)
	}
	utils.Success(ctx, gin.H{"date": date, "exp": exp, "point": point})
}

// MonthCount returns the number of sign-ins within a YYYY-MM month.
func (s *SignInController) MonthCount(ctx *gin.Context) {
	uid, ok := getUID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	month := ctx.Query("month")

	cacheKey := cacheKeyPrefix(uid) + "month:" + month
	if b, hit := utils.CacheGetBytes(cacheKey); hit {
		var cached int
		if json.Unmarshal(b, &cached) == nil {
			utils.Success(ctx, gin.H{"month": month, "count": cached})
			return
		}
	}

	count, err := s.svc.MonthSignCount(ctx.Request.Context(), uid, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			utils.Error(ctx, http.StatusBadRequest, 40033, "invalid month, expect YYYY-MM")
			return
		}
		// Degrade to zero but keep the fault observable.
		utils.Sugar.Warnf("month count failed uid=%s month=%s err=%v", uid, month, err)
		utils.Success(ctx, gin.H{"month": month, "count": 0})
		return
	}
	utils.CacheSetJSON(cacheKey, count, 10*time.Minute)
	utils.Success(ctx, gin.H{"month": month, "count": count})
}

type calendarDay struct {
	Day    int  `json:"day"`
	Signed bool `json:"signed"`
}

// Calendar returns the month's day grid with per-day signed status, computed
// from the sign-in log.
func (s *SignInController) Calendar(ctx *gin.Context) {
	uid, ok := getUID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid year")
		return
	}
	monthNum, err := strconv.Atoi(ctx.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		utils.Error(ctx, http.StatusBadRequest, 40035, "invalid month")
		return
	}
	month := time.Month(monthNum)

	cacheKey := fmt.Sprintf("%scalendar:%04d-%02d", cacheKeyPrefix(uid), year, monthNum)
	if b, hit := utils.CacheGetBytes(cacheKey); hit {
		var cached []calendarDay
		if json.Unmarshal(b, &cached) == nil {
			utils.Success(ctx, gin.H{"year": year, "month": monthNum, "days": cached})
			return
		}
	}

	signed, err := s.svc.SignedDaysOfMonth(ctx.Request.Context(), uid, year, month)
	if err != nil {
		utils.Sugar.Warnf("calendar query failed uid=%s err=%v", uid, err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to load calendar")
		return
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	totalDays := first.AddDate(0, 1, -1).Day()
	days := make([]calendarDay, 0, totalDays)
	for day := 1; day <= totalDays; day++ {
		days = append(days, calendarDay{Day: day, Signed: signed[day]})
	}

	utils.CacheSetJSON(cacheKey, days, 10*time.Minute)
	utils.Success(ctx, gin.H{"year": year, "month": monthNum, "days": days})
}

func getUID(ctx *gin.Context) (string, bool) {
	uid := ctx.GetString(middleware.ContextUIDKey)
	return uid, uid != ""
}

func cacheKeyPrefix(uid string) string {
	return "signin:" + uid + ":"
}
