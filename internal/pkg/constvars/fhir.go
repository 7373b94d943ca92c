package constvars

const (
	ResourcePatient                  = "Patient"
	ResourceObservation              = "Observation"
	ResourceMedicationAdministration = "MedicationAdministration"
	ResourceProcedure                = "Procedure"
)

const (
	FhirSearchParamPatient  = "patient"
	FhirSearchParamCode     = "code"
	FhirSearchParamDate     = "date"
	FhirSearchParamEffect   = "effective-time"
	FhirSearchParamCount    = "_count"
	FhirSearchParamSort     = "_sort"
	FhirSearchParamStatus   = "status"
	FhirSortMostRecentFirst = "-date"
)

const (
	FhirObservationStatusFinal     = "final"
	FhirObservationStatusAmended   = "amended"
	FhirObservationStatusCorrected = "corrected"
	FhirBundleTypeSearchSet        = "searchset"
)

// LOINC codes for the observations the collector reads.
const (
	LoincPaO2             = "2703-7"
	LoincFiO2             = "3150-0"
	LoincFiO2VentSetting  = "19994-3"
	LoincPaO2FiO2Ratio    = "50984-4"
	LoincPlatelets        = "777-3"
	LoincBilirubinTotal   = "1975-2"
	LoincSystolicBP       = "8480-6"
	LoincDiastolicBP      = "8462-4"
	LoincMeanArterialBP   = "8478-0"
	LoincGlasgowComaScore = "9269-2"
	LoincCreatinine       = "2160-0"
	LoincUrineOutput24h   = "9192-6"
	LoincUrineVolume24h   = "3167-4"
	LoincRespiratoryRate  = "9279-1"
	LoincHeartRate        = "8867-4"
	LoincBodyTemperature  = "8310-5"
	LoincOxygenSaturation = "2708-6"
	LoincSpO2PulseOx      = "59408-5"
	LoincAVPU             = "67775-7"
)

// SNOMED codes for the procedures that flag respiratory support.
const (
	SnomedMechanicalVentilation = "40617009"
	SnomedVentilatorCare        = "243147009"
	SnomedOxygenTherapy         = "57485005"
)

// RxNorm ingredient codes for vasopressor administrations.
const (
	RxNormDopamine       = "3628"
	RxNormDobutamine     = "3616"
	RxNormEpinephrine    = "3992"
	RxNormNorepinephrine = "7512"
	RxNormPhenylephrine  = "8163"
)
