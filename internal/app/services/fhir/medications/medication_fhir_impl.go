package medications

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

type medicationFhirClient struct {
	BaseUrl string
}

func NewMedicationFhirClient(baseUrl string) contracts.MedicationFhirClient {
	return &medicationFhirClient{
		BaseUrl: baseUrl,
	}
}

func (c *medicationFhirClient) SearchMedicationAdministrations(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.MedicationAdministration, error) {
	bundle, err := c.search(ctx, constvars.ResourceMedicationAdministration, query)
	if err != nil {
		return nil, err
	}

	administrations := make([]fhir_dto.MedicationAdministration, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var administration fhir_dto.MedicationAdministration
		err = json.Unmarshal(entry.Resource, &administration)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceMedicationAdministration)
		}
		if administration.ResourceType != constvars.ResourceMedicationAdministration {
			continue
		}
		administrations = append(administrations, administration)
	}

	return administrations, nil
}

func (c *medicationFhirClient) SearchProcedures(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.Procedure, error) {
	bundle, err := c.search(ctx, constvars.ResourceProcedure, query)
	if err != nil {
		return nil, err
	}

	procedures := make([]fhir_dto.Procedure, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		var procedure fhir_dto.Procedure
		err = json.Unmarshal(entry.Resource, &procedure)
		if err != nil {
			return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceProcedure)
		}
		if procedure.ResourceType != constvars.ResourceProcedure {
			continue
		}
		procedures = append(procedures, procedure)
	}

	return procedures, nil
}

func (c *medicationFhirClient) search(ctx context.Context, resourceType string, query contracts.MedicationSearchQuery) (*fhir_dto.FHIRBundle, error) {
	params := url.Values{}
	params.Set(constvars.FhirSearchParamPatient, query.PatientID)
	params.Set(constvars.FhirSearchParamCode, strings.Join(query.Codes, ","))
	params.Add(constvars.FhirSearchParamDate, "ge"+query.WindowStart.Format(time.RFC3339))
	params.Add(constvars.FhirSearchParamDate, "le"+query.WindowEnd.Format(time.RFC3339))
	if query.MaxCount > 0 {
		params.Set(constvars.FhirSearchParamCount, strconv.Itoa(query.MaxCount))
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s?%s", c.BaseUrl, resourceType, params.Encode()), nil)
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
			return nil, exceptions.ErrSearchFHIRResource(err, resourceType)
		}

		var outcome fhir_dto.OperationOutcome
		err = json.Unmarshal(bodyBytes, &outcome)
		if err != nil {
			return nil, exceptions.ErrSearchFHIRResource(err, resourceType)
		}

		if len(outcome.Issue) > 0 {
			fhirErrorIssue := fmt.Errorf(outcome.Issue[0].Diagnostics)
			return nil, exceptions.ErrSearchFHIRResource(fhirErrorIssue, resourceType)
		}
		return nil, exceptions.ErrSearchFHIRResource(fmt.Errorf("unexpected status %d", resp.StatusCode), resourceType)
	}

	bundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(&bundle)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}

	return bundle, nil
}
