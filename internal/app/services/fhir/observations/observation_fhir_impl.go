package observations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/exceptions"
	"sepsis-service/internal/pkg/fhir_dto"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type observationFhirClient struct {
	BaseUrl string
}

func NewObservationFhirClient(baseUrl string) contracts.ObservationFhirClient {
	return &observationFhirClient{
		BaseUrl: baseUrl + "/" + constvars.ResourceObservation,
	}
}

// SearchObservations returns the most-recent-first observations matching
// any of the query codes inside the window. An empty bundle is not an
// error; only transport failures and server OperationOutcomes are.
func (c *observationFhirClient) SearchObservations(ctx context.Context, query contracts.ObservationSearchQuery) ([]fhir_dto.Observation, error) {
	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, query.PatientID)
	params.Set(constvars.FhirSearchParamCode, strings.Join(query.Codes, ","))
	params.Add(constvars.FhirSearchParamDate, "ge"+query.WindowStart.Format(time.RFC3339))
	params.Add(constvars.FhirSearchParamDate, "le"+query.WindowEnd.Format(time.RFC3339))
	params.Set(constvars.FhirSearchParamSort, constvars.FhirSortMostRecentFirst)
	if query.MaxCount > 0 {
		params.Set(constvars.FhirSearchParamCount, strconv.Itoa(query.MaxCount))
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s?%s", c.BaseUrl, params.Encode()), nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceObservation)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, constvars.ResourceObservation)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf(outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
		}
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), constvars.ResourceObservation)
	}

	bundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	observations := make([]fhir_dto.Observation, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var observation fhir_dto.Observation
		err = json.Unmarshal(entry.Resource, &observation)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
		}
		if observation.ResourceType != constvars.ResourceObservation {
			continue
		}
		observations = append(observations, observation)
	}

	return observations, nil
}
