package parameters

// VasopressorDoses carries the active infusion rates in mcg/kg/min.
// A nil field means the drug is not being administered.
type VasopressorDoses struct {
	Dopamine       *float64
	Dobutamine     *float64
	Epinephrine    *float64
	Norepinephrine *float64
	Phenylephrine  *float64
}

func (v VasopressorDoses) HasAny() bool {
	return v.Dopamine != nil || v.Dobutamine != nil || v.Epinephrine != nil ||
		v.Norepinephrine != nil || v.Phenylephrine != nil
}

func doseOf(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func (v VasopressorDoses) DopamineDose() float64       { return doseOf(v.Dopamine) }
func (v VasopressorDoses) DobutamineDose() float64     { return doseOf(v.Dobutamine) }
func (v VasopressorDoses) EpinephrineDose() float64    { return doseOf(v.Epinephrine) }
func (v VasopressorDoses) NorepinephrineDose() float64 { return doseOf(v.Norepinephrine) }
func (v VasopressorDoses) PhenylephrineDose() float64  { return doseOf(v.Phenylephrine) }
