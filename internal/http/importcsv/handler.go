package importcsv

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/VeliorGroup/fluxo/internal/categorize"
	"github.com/VeliorGroup/fluxo/internal/http/respond"
	"github.com/VeliorGroup/fluxo/internal/importer"
	"github.com/VeliorGroup/fluxo/internal/logger"
	"github.com/VeliorGroup/fluxo/internal/money"
	"github.com/VeliorGroup/fluxo/internal/transaction"
	"github.com/VeliorGroup/fluxo/internal/validate"
)

const defaultMaxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	rules     *categorize.Service
	maxUpload int64
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, rules *categorize.Service, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}

	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		rules:     rules,
		maxUpload: maxUpload,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	CompanyID   uuid.UUID            `json:"company_id"`
	AccountID   *uuid.UUID           `json:"account_id,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Currency    money.Currency       `json:"currency"`
	Status      transaction.Status   `json:"status"`
	Category    transaction.Category `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
	CreatedAt   time.Time            `json:"created_at"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Categorized  int                   `json:"categorized"`
	Transactions []transactionResponse `json:"transactions"`
}

type createParamsDTO struct {
	CompanyID   uuid.UUID            `json:"company_id"`
	AccountID   *uuid.UUID           `json:"account_id,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Currency    money.Currency       `json:"currency"`
	Status      transaction.Status   `json:"status"`
	Category    transaction.Category `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO     `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

// options reads the form fields that apply to every imported row.
func options(r *http.Request) (importer.Options, error) {
	companyID, err := uuid.Parse(r.FormValue("company_id"))
	if err != nil {
		return importer.Options{}, validate.Fail("company_id", "must be a valid id")
	}

	opts := importer.Options{CompanyID: companyID}

	if v := r.FormValue("account_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return importer.Options{}, validate.Fail("account_id", "must be a valid id")
		}

		opts.AccountID = &id
	}

	if v := r.FormValue("currency"); v != "" {
		c, err := money.ParseCurrency(v)
		if err != nil {
			return importer.Options{}, validate.Fail("currency", "%v", err)
		}

		opts.Currency = c
	}

	if v := r.FormValue("status"); v != "" {
		s, err := transaction.ParseStatus(v)
		if err != nil {
			return importer.Options{}, validate.Fail("status", "%v", err)
		}

		opts.Status = s
	}

	return opts, nil
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatLedger
	}

	opts, err := options(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file, opts)
	if err != nil {
		respond.Error(w, r, validate.Fail("file", "%v", err))
		return
	}

	categorized, err := h.rules.Apply(r.Context(), ownerID, params)
	if err != nil {
		// Rules only refine rows; the import goes on without them.
		logger.FromContext(r.Context()).Warn("applying category rules failed", "error", err)
	}

	result, err := h.txSvc.ImportBatch(r.Context(), ownerID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		respond.JSON(w, r, http.StatusConflict, resp)

		return
	}

	resp := toSuccessResponse(result.Imported)
	resp.Categorized = categorized

	respond.JSON(w, r, http.StatusCreated, resp)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := respond.Owner(w, r)
	if !ok {
		return
	}

	var req confirmRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		date, err := respond.ParseDate("date", p.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params = append(params, transaction.CreateParams{
			OwnerID:     ownerID,
			CompanyID:   p.CompanyID,
			AccountID:   p.AccountID,
			Amount:      p.Amount,
			Type:        p.Type,
			Currency:    p.Currency,
			Status:      p.Status,
			Category:    p.Category,
			Description: p.Description,
			Date:        date,
		})
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), ownerID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		CompanyID:   tx.CompanyID,
		AccountID:   tx.AccountID,
		Amount:      tx.Amount,
		Type:        tx.Type(),
		Currency:    tx.Currency,
		Status:      tx.Status,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        respond.Date(tx.Date),
		CreatedAt:   tx.CreatedAt,
	}
}

func toParamsDTO(p transaction.CreateParams) createParamsDTO {
	return createParamsDTO{
		CompanyID:   p.CompanyID,
		AccountID:   p.AccountID,
		Amount:      p.Amount,
		Type:        p.Type,
		Currency:    p.Currency,
		Status:      p.Status,
		Category:    p.Category,
		Description: p.Description,
		Date:        respond.Date(p.Date),
	}
}
