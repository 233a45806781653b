package controllerImp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	history "cropplanner/pkg/history/service"
	"cropplanner/pkg/model"
	"cropplanner/pkg/predict/controller"
	"cropplanner/pkg/predict/service"
)

type predictCtrl struct {
	s       service.PredictService
	history history.HistoryService
}

// New builds the controller. hist may be nil when history is disabled.
func New(s service.PredictService, hist history.HistoryService) controller.PredictController {
	return &predictCtrl{s: s, history: hist}
}

type predictReq struct {
	N            *float64 `json:"N"`
	P            *float64 `json:"P"`
	K            *float64 `json:"K"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	PH           *float64 `json:"ph"`
	Rainfall     *float64 `json:"rainfall"`
	PreviousCrop *string  `json:"previous_crop"`
}

type predictResp struct {
	PredictedCrop  string  `json:"predicted_crop"`
	PredictedYield float64 `json:"predicted_yield"`
}

func (r predictReq) record() (service.FeatureRecord, error) {
	var missing []string
	num := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}
	rec := service.FeatureRecord{Soil: model.Soil{
		N:           num("N", r.N),
		P:           num("P", r.P),
		K:           num("K", r.K),
		Temperature: num("temperature", r.Temperature),
		Humidity:    num("humidity", r.Humidity),
		PH:          num("ph", r.PH),
		Rainfall:    num("rainfall", r.Rainfall),
	}}
	if r.PreviousCrop == nil {
		missing = append(missing, "previous_crop")
	} else {
		rec.PreviousCrop = *r.PreviousCrop
	}
	if len(missing) > 0 {
		return rec, fmt.Errorf("%w: missing field(s): %s", service.ErrMalformedRequest, strings.Join(missing, ", "))
	}
	return rec, nil
}

func (h *predictCtrl) Predict(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return h.fail(c, service.ErrMethodNotAllowed)
	}
	ctx := c.Request().Context()
	l := zerolog.Ctx(ctx)

	var req predictReq
	if err := decodeBody(c.Request().Body, &req); err != nil {
		return h.fail(c, fmt.Errorf("%w: %v", service.ErrMalformedRequest, err))
	}
	rec, err := req.record()
	if err != nil {
		return h.fail(c, err)
	}
	l.Debug().Interface("record", rec).Msg("received prediction request")

	res, err := h.s.PredictCropAndYield(ctx, rec)
	if err != nil {
		return h.fail(c, err)
	}
	if h.history != nil {
		if err := h.history.Record(ctx, rec, res); err != nil {
			l.Warn().Err(err).Msg("record prediction history")
		}
	}
	return c.JSON(http.StatusOK, predictResp{PredictedCrop: res.CropLabel, PredictedYield: res.Yield})
}

// decodeBody reads exactly one JSON value whatever the Content-Type says.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func (h *predictCtrl) fail(c echo.Context, err error) error {
	if errors.Is(err, service.ErrMethodNotAllowed) {
		return c.JSON(http.StatusMethodNotAllowed, echo.Map{"error": "Invalid request method"})
	}
	zerolog.Ctx(c.Request().Context()).Warn().Err(err).Msg("prediction failed")
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}
