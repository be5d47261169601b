package api

import (
	"errors"
	"net/http"

	"desayuno/internal/domain/voucher"
	"desayuno/internal/handler/dto/request"
	resdto "desayuno/internal/handler/dto/response"
	"desayuno/internal/handler/httperr"
	"desayuno/internal/handler/middleware"
	"desayuno/internal/pkg/errs"
	"desayuno/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VoucherHandler struct {
	issuanceUseCase   usecase.IssuanceUseCase
	redemptionUseCase usecase.RedemptionUseCase
}

func NewVoucherHandler(issuanceUseCase usecase.IssuanceUseCase, redemptionUseCase usecase.RedemptionUseCase) *VoucherHandler {
	return &VoucherHandler{
		issuanceUseCase:   issuanceUseCase,
		redemptionUseCase: redemptionUseCase,
	}
}

// @Summary Issue vouchers
// @Description Issue a batch of signed breakfast vouchers for a stay
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.IssueVouchersRequest true "Issuance request"
// @Success 201 {object} resdto.IssueVouchersResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /vouchers [post]
func (h *VoucherHandler) IssueVouchers(c *gin.Context) {
	var req request.IssueVouchersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", usecase.ReasonValidation, nil)
		return
	}

	rms, err := h.issuanceUseCase.IssueVouchers(c.Request.Context(), req.ToParams(middleware.DeviceIDString(c)))
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrStayNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Stay not found", usecase.ReasonNotFound, nil)
		case errors.Is(err, errs.ErrStayNotActive):
			httperr.AbortWithError(c, http.StatusConflict, err, "Stay is not active", usecase.ReasonValidation, nil)
		case errors.Is(err, voucher.ErrInvalidWindow):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, voucher.ErrInvalidWindow.Error(), usecase.ReasonValidation, nil)
		case errors.Is(err, voucher.ErrWindowOutsideStay):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, voucher.ErrWindowOutsideStay.Error(), usecase.ReasonValidation, nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", usecase.ReasonValidation, nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", usecase.ReasonInternal, nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IssueVouchersResponse{Vouchers: resdto.FromVoucherRMs(rms)})
}

// @Summary List stay vouchers
// @Description List all vouchers issued for a stay
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param stay_id path string true "Stay ID"
// @Success 200 {object} resdto.IssueVouchersResponse
// @Failure 400 {object} httperr.Response
// @Router /stays/{stay_id}/vouchers [get]
func (h *VoucherHandler) GetStayVouchers(c *gin.Context) {
	stayID, err := uuid.Parse(c.Param("stay_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid stay ID", usecase.ReasonValidation, nil)
		return
	}

	rms, err := h.issuanceUseCase.GetStayVouchers(c.Request.Context(), stayID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", usecase.ReasonInternal, nil)
		return
	}

	c.JSON(http.StatusOK, resdto.IssueVouchersResponse{Vouchers: resdto.FromVoucherRMs(rms)})
}

// @Summary Validate voucher
// @Description Check whether a voucher is currently redeemable without consuming it
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ValidateVoucherRequest true "Validation request"
// @Success 200 {object} resdto.ValidationResponse
// @Failure 400 {object} httperr.Response
// @Router /vouchers/validate [post]
func (h *VoucherHandler) ValidateVoucher(c *gin.Context) {
	var req request.ValidateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", usecase.ReasonValidation, nil)
		return
	}

	result, err := h.redemptionUseCase.Validate(c.Request.Context(), req.Code, req.Signature)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", usecase.ReasonInternal, nil)
		return
	}

	resp := resdto.ValidationResponse{Valid: result.Valid, Reason: result.Reason}
	if result.Voucher != nil {
		resp.Voucher = resdto.FromVoucherRM(result.Voucher)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Redeem voucher
// @Description Redeem a voucher exactly once; retries with the same local ID return the original redemption
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RedeemVoucherRequest true "Redemption request"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /vouchers/redeem [post]
func (h *VoucherHandler) RedeemVoucher(c *gin.Context) {
	deviceID, ok := middleware.GetDeviceID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	cafeteriaID, ok := middleware.GetCafeteriaID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req request.RedeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", usecase.ReasonValidation, nil)
		return
	}

	rm, err := h.redemptionUseCase.Redeem(c.Request.Context(), req.ToParams(deviceID, cafeteriaID))
	if err != nil {
		h.abortRedeemError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedemptionRM(rm))
}

func (h *VoucherHandler) abortRedeemError(c *gin.Context, err error) {
	var redeemed *usecase.AlreadyRedeemedError
	if errors.As(err, &redeemed) {
		var detail any
		if redeemed.Existing != nil {
			detail = resdto.FromRedemptionRM(redeemed.Existing)
		}
		httperr.AbortWithError(c, http.StatusConflict, err, voucher.ErrAlreadyRedeemed.Error(), usecase.ReasonAlreadyRedeemed, detail)
		return
	}

	switch {
	case errors.Is(err, errs.ErrVoucherNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Voucher not found", usecase.ReasonNotFound, nil)
	case errors.Is(err, errs.ErrVoucherExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Voucher expired", usecase.ReasonExpired, nil)
	case errors.Is(err, errs.ErrVoucherCancelled):
		httperr.AbortWithError(c, http.StatusConflict, err, voucher.ErrAlreadyCancelled.Error(), usecase.ReasonCancelled, nil)
	case errors.Is(err, errs.ErrVoucherNotYetValid):
		httperr.AbortWithError(c, http.StatusConflict, err, "Voucher is not yet valid", usecase.ReasonNotYetValid, nil)
	case errors.Is(err, errs.ErrSignatureInvalid):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid voucher signature", usecase.ReasonSignatureInvalid, nil)
	case errors.Is(err, errs.ErrLocalIDMismatch):
		httperr.AbortWithError(c, http.StatusConflict, err, "Local ID already used for a different voucher", usecase.ReasonLocalIDMismatch, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", usecase.ReasonInternal, nil)
	}
}

// @Summary Cancel voucher
// @Description Cancel an active voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CancelVoucherRequest true "Cancellation request"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /vouchers/cancel [post]
func (h *VoucherHandler) CancelVoucher(c *gin.Context) {
	var req request.CancelVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", usecase.ReasonValidation, nil)
		return
	}

	err := h.redemptionUseCase.Cancel(c.Request.Context(), req.Code, req.Reason, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVoucherNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Voucher not found", usecase.ReasonNotFound, nil)
		case errors.Is(err, errs.ErrVoucherAlreadyUsed):
			httperr.AbortWithError(c, http.StatusConflict, err, voucher.ErrAlreadyRedeemed.Error(), usecase.ReasonAlreadyRedeemed, nil)
		case errors.Is(err, errs.ErrVoucherCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err, voucher.ErrAlreadyCancelled.Error(), usecase.ReasonCancelled, nil)
		case errors.Is(err, errs.ErrVoucherExpired):
			httperr.AbortWithError(c, http.StatusGone, err, "Voucher expired", usecase.ReasonExpired, nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", usecase.ReasonInternal, nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
