package risk

// FieldKind describes the value type of a measurement field.
type FieldKind int

const (
	KindInteger FieldKind = iota
	KindReal
	KindBoolean
)

// FieldSpec describes one measurement field and its inclusive range.
// Min and Max are zero for boolean fields.
type FieldSpec struct {
	Name string    `json:"name" yaml:"name"`
	Kind FieldKind `json:"kind" yaml:"kind"`
	Min  float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max  float64   `json:"max,omitempty" yaml:"max,omitempty"`
}

// field names, also used as the JSON/YAML keys of Input
const (
	FieldAge                  = "age"
	FieldBMI                  = "bmi"
	FieldSystolicBP           = "systolic_bp"
	FieldDiastolicBP          = "diastolic_bp"
	FieldTotalCholesterol     = "total_cholesterol"
	FieldLDLCholesterol       = "ldl_cholesterol"
	FieldHDLCholesterol       = "hdl_cholesterol"
	FieldTriglycerides        = "triglycerides"
	FieldHeartRate            = "heart_rate"
	FieldRestingHeartRate     = "resting_heart_rate"
	FieldHeartRateVariability = "heart_rate_variability"
	FieldSmoking              = "smoking"
	FieldDiabetes             = "diabetes"
	FieldSex                  = "sex"
	FieldRace                 = "race"
)

// fields is the scoring order. Weight vectors are indexed the same way.
var fields = []FieldSpec{
	{Name: FieldAge, Kind: KindInteger, Min: 20, Max: 100},
	{Name: FieldBMI, Kind: KindReal, Min: 15.0, Max: 50.0},
	{Name: FieldSystolicBP, Kind: KindInteger, Min: 90, Max: 200},
	{Name: FieldDiastolicBP, Kind: KindInteger, Min: 60, Max: 140},
	{Name: FieldTotalCholesterol, Kind: KindInteger, Min: 100, Max: 320},
	{Name: FieldLDLCholesterol, Kind: KindInteger, Min: 30, Max: 300},
	{Name: FieldHDLCholesterol, Kind: KindInteger, Min: 20, Max: 100},
	{Name: FieldTriglycerides, Kind: KindInteger, Min: 50, Max: 500},
	{Name: FieldHeartRate, Kind: KindInteger, Min: 40, Max: 150},
	{Name: FieldRestingHeartRate, Kind: KindInteger, Min: 40, Max: 100},
	{Name: FieldHeartRateVariability, Kind: KindInteger, Min: 10, Max: 100},
	{Name: FieldSmoking, Kind: KindBoolean},
	{Name: FieldDiabetes, Kind: KindBoolean},
}

// NumFields is the length of the measurement vector.
const NumFields = 13

// Fields returns the measurement field table in scoring order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fields))
	copy(out, fields)
	return out
}

// LookupField returns the spec for the named measurement field.
func LookupField(name string) (FieldSpec, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Sex is the categorical sex of the assessed individual.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Race is the categorical race of the assessed individual.
type Race string

const (
	RaceWhite           Race = "white"
	RaceAfricanAmerican Race = "african_american"
	RaceOther           Race = "other"
)

var (
	sexValues  = []string{string(SexMale), string(SexFemale)}
	raceValues = []string{string(RaceWhite), string(RaceAfricanAmerican), string(RaceOther)}
)

// Input is an unvalidated assessment request. Pointer fields distinguish
// a value that was not supplied from a zero value.
type Input struct {
	Age                  *int     `json:"age" yaml:"age" validate:"required,gte=20,lte=100"`
	BMI                  *float64 `json:"bmi" yaml:"bmi" validate:"required,gte=15,lte=50"`
	SystolicBP           *int     `json:"systolic_bp" yaml:"systolic_bp" validate:"required,gte=90,lte=200"`
	DiastolicBP          *int     `json:"diastolic_bp" yaml:"diastolic_bp" validate:"required,gte=60,lte=140"`
	TotalCholesterol     *int     `json:"total_cholesterol" yaml:"total_cholesterol" validate:"required,gte=100,lte=320"`
	LDLCholesterol       *int     `json:"ldl_cholesterol" yaml:"ldl_cholesterol" validate:"required,gte=30,lte=300"`
	HDLCholesterol       *int     `json:"hdl_cholesterol" yaml:"hdl_cholesterol" validate:"required,gte=20,lte=100"`
	Triglycerides        *int     `json:"triglycerides" yaml:"triglycerides" validate:"required,gte=50,lte=500"`
	HeartRate            *int     `json:"heart_rate" yaml:"heart_rate" validate:"required,gte=40,lte=150"`
	RestingHeartRate     *int     `json:"resting_heart_rate" yaml:"resting_heart_rate" validate:"required,gte=40,lte=100"`
	HeartRateVariability *int     `json:"heart_rate_variability" yaml:"heart_rate_variability" validate:"required,gte=10,lte=100"`
	Smoking              *bool    `json:"smoking" yaml:"smoking" validate:"required"`
	Diabetes             *bool    `json:"diabetes" yaml:"diabetes" validate:"required"`
	Sex                  string   `json:"sex" yaml:"sex" validate:"required,oneof=male female"`
	Race                 string   `json:"race" yaml:"race" validate:"required,oneof=white african_american other"`
}

// Measurement is a validated input. Only the Validator creates one.
type Measurement struct {
	Age                  int     `json:"age" yaml:"age"`
	BMI                  float64 `json:"bmi" yaml:"bmi"`
	SystolicBP           int     `json:"systolic_bp" yaml:"systolic_bp"`
	DiastolicBP          int     `json:"diastolic_bp" yaml:"diastolic_bp"`
	TotalCholesterol     int     `json:"total_cholesterol" yaml:"total_cholesterol"`
	LDLCholesterol       int     `json:"ldl_cholesterol" yaml:"ldl_cholesterol"`
	HDLCholesterol       int     `json:"hdl_cholesterol" yaml:"hdl_cholesterol"`
	Triglycerides        int     `json:"triglycerides" yaml:"triglycerides"`
	HeartRate            int     `json:"heart_rate" yaml:"heart_rate"`
	RestingHeartRate     int     `json:"resting_heart_rate" yaml:"resting_heart_rate"`
	HeartRateVariability int     `json:"heart_rate_variability" yaml:"heart_rate_variability"`
	Smoking              bool    `json:"smoking" yaml:"smoking"`
	Diabetes             bool    `json:"diabetes" yaml:"diabetes"`
	Sex                  Sex     `json:"sex" yaml:"sex"`
	Race                 Race    `json:"race" yaml:"race"`
}

// Vector returns the measurement values in scoring order with booleans as 0 or 1.
func (m *Measurement) Vector() []float64 {
	return []float64{
		float64(m.Age),
		m.BMI,
		float64(m.SystolicBP),
		float64(m.DiastolicBP),
		float64(m.TotalCholesterol),
		float64(m.LDLCholesterol),
		float64(m.HDLCholesterol),
		float64(m.Triglycerides),
		float64(m.HeartRate),
		float64(m.RestingHeartRate),
		float64(m.HeartRateVariability),
		boolToFloat(m.Smoking),
		boolToFloat(m.Diabetes),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// measurement assumes the input already passed validation.
func (in *Input) measurement() *Measurement {
	return &Measurement{
		Age:                  *in.Age,
		BMI:                  *in.BMI,
		SystolicBP:           *in.SystolicBP,
		DiastolicBP:          *in.DiastolicBP,
		TotalCholesterol:     *in.TotalCholesterol,
		LDLCholesterol:       *in.LDLCholesterol,
		HDLCholesterol:       *in.HDLCholesterol,
		Triglycerides:        *in.Triglycerides,
		HeartRate:            *in.HeartRate,
		RestingHeartRate:     *in.RestingHeartRate,
		HeartRateVariability: *in.HeartRateVariability,
		Smoking:              *in.Smoking,
		Diabetes:             *in.Diabetes,
		Sex:                  Sex(in.Sex),
		Race:                 Race(in.Race),
	}
}

func ptr[T any](v T) *T {
	return &v
}

// SampleInput returns a complete, valid input prefilled with typical adult
// values. It is meant as an editable template.
func SampleInput() *Input {
	return &Input{
		Age:                  ptr(45),
		BMI:                  ptr(25.0),
		SystolicBP:           ptr(120),
		DiastolicBP:          ptr(80),
		TotalCholesterol:     ptr(180),
		LDLCholesterol:       ptr(100),
		HDLCholesterol:       ptr(50),
		Triglycerides:        ptr(150),
		HeartRate:            ptr(75),
		RestingHeartRate:     ptr(65),
		HeartRateVariability: ptr(50),
		Smoking:              ptr(false),
		Diabetes:             ptr(false),
		Sex:                  string(SexFemale),
		Race:                 string(RaceOther),
	}
}
