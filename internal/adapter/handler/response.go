package handler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/sportsync/internal/core/domain"
	"github.com/srgjo27/sportsync/internal/core/services"
)

type bookingResponse struct {
	ID            uuid.UUID            `json:"id"`
	CourtID       uuid.UUID            `json:"courtId"`
	CourtName     string               `json:"courtName,omitempty"`
	ComplexName   string               `json:"complexName,omitempty"`
	CustomerID    *uuid.UUID           `json:"customerId,omitempty"`
	CustomerName  string               `json:"customerName,omitempty"`
	CustomerPhone string               `json:"customerPhone,omitempty"`
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	TotalPrice    decimal.Decimal      `json:"totalPrice"`
	Status        domain.BookingStatus `json:"status"`
	BookingType   domain.BookingType   `json:"bookingType"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func newBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		CourtID:       b.CourtID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.WalkInName,
		CustomerPhone: b.WalkInPhone,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		BookingType:   b.Type,
		CreatedAt:     b.CreatedAt,
	}
}

func newDetailsResponse(d domain.BookingDetails) bookingResponse {
	r := newBookingResponse(d.Booking)
	r.CourtName = d.CourtName
	r.ComplexName = d.ComplexName
	r.CustomerName = d.DisplayName()
	return r
}

func newDetailsList(items []domain.BookingDetails) []bookingResponse {
	out := make([]bookingResponse, 0, len(items))
	for _, d := range items {
		out = append(out, newDetailsResponse(d))
	}
	return out
}

type createdBookingResponse struct {
	Booking  bookingResponse          `json:"booking"`
	Payment  *domain.PaymentInfo      `json:"payment,omitempty"`
	Segments []services.PricedSegment `json:"segments"`
}

func newCreatedBookingResponse(res *services.BookingResult) createdBookingResponse {
	b := newBookingResponse(res.Booking)
	b.CourtName = res.CourtName
	b.ComplexName = res.ComplexName

	return createdBookingResponse{Booking: b, Payment: res.Payment, Segments: res.Segments}
}

type pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type bookingPageResponse struct {
	Items      []bookingResponse `json:"items"`
	Pagination pagination        `json:"pagination"`
}

type paymentInfoResponse struct {
	Booking bookingResponse     `json:"booking"`
	Payment *domain.PaymentInfo `json:"payment"`
}

type complexResponse struct {
	ID            uuid.UUID        `json:"id"`
	OwnerID       uuid.UUID        `json:"ownerId"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	City          string           `json:"city"`
	PhoneNumber   string           `json:"phoneNumber"`
	SportType     string           `json:"sportType"`
	OpenTime      domain.TimeOfDay `json:"openTime"`
	CloseTime     domain.TimeOfDay `json:"closeTime"`
	BankCode      string           `json:"bankCode"`
	AccountNumber string           `json:"accountNumber"`
	AccountName   string           `json:"accountName"`
	Rating        decimal.Decimal  `json:"rating"`
	TotalReviews  int              `json:"totalReviews"`
	Status        domain.Status    `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func newComplexResponse(cx *domain.Complex) complexResponse {
	return complexResponse{
		ID:            cx.ID,
		OwnerID:       cx.OwnerID,
		Name:          cx.Name,
		Address:       cx.Address,
		City:          cx.City,
		PhoneNumber:   cx.PhoneNumber,
		SportType:     cx.SportType,
		OpenTime:      cx.OpenTime,
		CloseTime:     cx.CloseTime,
		BankCode:      cx.BankCode,
		AccountNumber: cx.AccountNumber,
		AccountName:   cx.AccountName,
		Rating:        cx.Rating,
		TotalReviews:  cx.TotalReviews,
		Status:        cx.Status,
		CreatedAt:     cx.CreatedAt,
	}
}

type rateResponse struct {
	ID           uuid.UUID          `json:"id"`
	DayOfWeek    domain.DaySelector `json:"dayOfWeek"`
	StartTime    domain.TimeOfDay   `json:"startTime"`
	EndTime      domain.TimeOfDay   `json:"endTime"`
	PricePerHour decimal.Decimal    `json:"pricePerHour"`
}

type courtResponse struct {
	ID          uuid.UUID      `json:"id"`
	ComplexID   uuid.UUID      `json:"complexId"`
	ComplexName string         `json:"complexName,omitempty"`
	Name        string         `json:"name"`
	Status      domain.Status  `json:"status"`
	Rates       []rateResponse `json:"rates"`
}

func newCourtResponse(v *services.CourtView) courtResponse {
	rates := make([]rateResponse, 0, len(v.Rates))
	for _, r := range v.Rates {
		rates = append(rates, rateResponse{
			ID:           r.ID,
			DayOfWeek:    r.DayOfWeek,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			PricePerHour: r.PricePerHour,
		})
	}

	return courtResponse{
		ID:          v.Court.ID,
		ComplexID:   v.ComplexID,
		ComplexName: v.ComplexName,
		Name:        v.Court.Name,
		Status:      v.Court.Status,
		Rates:       rates,
	}
}

type statsResponse struct {
	TotalUsers       int                          `json:"totalUsers"`
	TotalComplexes   int                          `json:"totalComplexes"`
	TotalCourts      int                          `json:"totalCourts"`
	BookingsByStatus map[domain.BookingStatus]int `json:"bookingsByStatus"`
	Revenue          decimal.Decimal              `json:"revenue"`
}

type complexSummaryResponse struct {
	complexResponse
	CourtCount int        `json:"courtCount"`
	PriceRange priceRange `json:"priceRange"`
}

type priceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// newComplexSummaries hides banking details unless withBanking is set.
func newComplexSummaries(items []domain.ComplexSummary, withBanking bool) []complexSummaryResponse {
	out := make([]complexSummaryResponse, 0, len(items))
	for i := range items {
		s := &items[i]
		r := complexSummaryResponse{
			complexResponse: newComplexResponse(&s.Complex),
			CourtCount:      s.CourtCount,
			PriceRange:      priceRange{Min: s.MinPrice, Max: s.MaxPrice},
		}
		if !withBanking {
			r.complexResponse = r.complexResponse.public()
		}
		out = append(out, r)
	}
	return out
}

// public drops the fields only the owner needs.
func (r complexResponse) public() complexResponse {
	r.BankCode = ""
	r.AccountNumber = ""
	r.AccountName = ""
	return r
}

type complexPageResponse struct {
	Items      []complexSummaryResponse `json:"items"`
	Pagination pagination               `json:"pagination"`
}

type courtBrief struct {
	ID     uuid.UUID     `json:"id"`
	Name   string        `json:"name"`
	Status domain.Status `json:"status"`
}

type complexDetailResponse struct {
	complexResponse
	Courts []courtBrief `json:"courts"`
}

func newComplexDetailResponse(d *services.ComplexDetail, withBanking bool) complexDetailResponse {
	r := complexDetailResponse{complexResponse: newComplexResponse(&d.Complex), Courts: make([]courtBrief, 0, len(d.Courts))}
	if !withBanking {
		r.complexResponse = r.complexResponse.public()
	}
	for _, c := range d.Courts {
		r.Courts = append(r.Courts, courtBrief{ID: c.ID, Name: c.Name, Status: c.Status})
	}
	return r
}

type ownerStatsResponse struct {
	TotalComplexes  int             `json:"totalComplexes"`
	TotalCourts     int             `json:"totalCourts"`
	MonthlyBookings int             `json:"monthlyBookings"`
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	OccupancyRate   float64         `json:"occupancyRate"`
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
}

type reviewResponse struct {
	ID           uuid.UUID `json:"id"`
	ComplexID    uuid.UUID `json:"complexId"`
	ComplexName  string    `json:"complexName,omitempty"`
	CustomerName string    `json:"customerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

func newReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:           r.ID,
		ComplexID:    r.ComplexID,
		ComplexName:  r.ComplexName,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

func newReviewList(items []domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(items))
	for i := range items {
		out = append(out, newReviewResponse(&items[i]))
	}
	return out
}

type reviewSummaryResponse struct {
	AverageRating decimal.Decimal `json:"averageRating"`
	TotalReviews  int             `json:"totalReviews"`
	RatingStats   map[string]int  `json:"ratingStats"`
}

type reviewPageResponse struct {
	Items      []reviewResponse      `json:"items"`
	Summary    reviewSummaryResponse `json:"summary"`
	Pagination pagination            `json:"pagination"`
}

func newReviewPageResponse(p *domain.ReviewPage) reviewPageResponse {
	stats := make(map[string]int, len(p.Summary.Stars))
	for i, n := range p.Summary.Stars {
		stats[fmt.Sprintf("star_%d", i+1)] = n
	}

	return reviewPageResponse{
		Items: newReviewList(p.Items),
		Summary: reviewSummaryResponse{
			AverageRating: p.Summary.Average,
			TotalReviews:  p.Summary.Total,
			RatingStats:   stats,
		},
		Pagination: pagination{
			Page:       p.Page,
			PerPage:    p.PerPage,
			TotalItems: p.TotalItems,
			TotalPages: p.TotalPages(),
		},
	}
}

func newBookingPageResponse(p *domain.BookingPage) bookingPageResponse {
	return bookingPageResponse{
		Items: newDetailsList(p.Items),
		Pagination: pagination{
			Page:       p.Page,
			PerPage:    p.PerPage,
			TotalItems: p.TotalItems,
			TotalPages: p.TotalPages(),
		},
	}
}
