package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/mortgage-service/internal/models"
)

type fixedSignals struct {
	baseStrategy
	signals []models.ScoreFactor
}

func (s fixedSignals) RiskSignals(Assessment) []models.ScoreFactor {
	return s.signals
}

func factor(factors []models.ScoreFactor, name string) (float64, bool) {
	for _, f := range factors {
		if f.Name == name {
			return f.Points, true
		}
	}
	return 0, false
}

func TestDTIPoints(t *testing.T) {
	cases := []struct {
		dti  float64
		want float64
	}{
		{0.5, 40}, {20, 40}, {20.1, 35}, {30, 35}, {35, 25}, {40, 15}, {50, 5}, {50.1, -10}, {300, -10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, dtiPoints(tc.dti, 1000), tc.dti)
	}
	assert.Equal(t, -10.0, dtiPoints(0, 0))
}

func TestScore_NonIncreasingInDTI(t *testing.T) {
	a := Assessment{
		Application: spainApplication(),
		Profile:     countryProfile(t, models.Spain),
	}
	s := StrategyFor(models.Spain)

	prev := math.Inf(1)
	for dti := 0.0; dti <= 120; dti += 0.5 {
		a.DTI = dti
		got := Score(a, s).Value
		assert.LessOrEqual(t, got, prev, "dti %.1f", dti)
		prev = got
	}
}

func TestScore_BoundedGrid(t *testing.T) {
	for _, code := range []models.CountryCode{models.Spain, models.Colombia, models.Mexico, models.Argentina, models.Chile, models.Peru, models.USA} {
		p := countryProfile(t, code)
		s := StrategyFor(code)

		for _, income := range []float64{0, 500, 3_000, 50_000, 30_000_000} {
			for _, debts := range []float64{0, 100, 10_000, 5_000_000} {
				for _, dti := range []float64{0, 15, 33, 45, 500} {
					for _, bureau := range []int{0, 500, 900} {
						app := models.LoanApplication{
							MonthlyIncome:        income,
							ExistingMonthlyDebts: debts,
							CreditBureauScore:    ip(bureau),
							JobTenureMonths:      ip(72),
							Age:                  ip(30),
							HousingCategory:      "VIS",
							HasSubsidy:           true,
						}
						got := Score(Assessment{Application: app, Profile: p, DTI: dti}, s).Value
						assert.GreaterOrEqual(t, got, 0.0)
						assert.LessOrEqual(t, got, 100.0)
						assert.Equal(t, math.Round(got), got)
					}
				}
			}
		}
	}
}

func TestScore_SignalsAreCapped(t *testing.T) {
	a := Assessment{Application: models.LoanApplication{MonthlyIncome: 1}, Profile: countryProfile(t, models.Spain), DTI: 90}

	res := Score(a, fixedSignals{signals: []models.ScoreFactor{{Name: "huge", Points: 400}, {Name: "tiny", Points: -400}}})

	huge, _ := factor(res.Factors, "huge")
	tiny, _ := factor(res.Factors, "tiny")
	assert.Equal(t, 25.0, huge)
	assert.Equal(t, -25.0, tiny)
	// 50 base - 10 dti + 0 income + 15 debt + 25 - 25
	assert.Equal(t, 55.0, res.Value)
}

func TestScore_ClampedAtZero(t *testing.T) {
	a := Assessment{Application: models.LoanApplication{ExistingMonthlyDebts: 10}, Profile: countryProfile(t, models.Spain)}
	res := Score(a, fixedSignals{signals: []models.ScoreFactor{{Name: "a", Points: -25}, {Name: "b", Points: -25}}})
	assert.Equal(t, 0.0, res.Value)
}

func TestScore_CountrySignals(t *testing.T) {
	co := countryProfile(t, models.Colombia)
	app := models.LoanApplication{
		MonthlyIncome:     4_000_000,
		HousingCategory:   "vis",
		HasSubsidy:        true,
		CreditBureauScore: ip(810),
		JobTenureMonths:   ip(30),
		Age:               ip(50),
	}
	res := Score(Assessment{Application: app, Profile: co, DTI: 25}, StrategyFor(models.Colombia))

	want := map[string]float64{
		"housing_category": 25,
		"subsidy":          5,
		"bureau_score":     10,
		"job_tenure":       5,
		"age":              2,
		"income":           5,
	}
	for name, points := range want {
		got, ok := factor(res.Factors, name)
		assert.True(t, ok, name)
		assert.Equal(t, points, got, name)
	}

	us := Score(Assessment{Application: app, Profile: countryProfile(t, models.USA), DTI: 25}, StrategyFor(models.USA))
	_, ok := factor(us.Factors, "age")
	assert.False(t, ok)

	es := Score(Assessment{Application: models.LoanApplication{MonthlyIncome: 3000, EmploymentType: "Civil_Servant"}, Profile: countryProfile(t, models.Spain), DTI: 20}, StrategyFor(models.Spain))
	got, ok := factor(es.Factors, "employment")
	assert.True(t, ok)
	assert.Equal(t, 5.0, got)
}

func TestScore_BureauBands(t *testing.T) {
	mx := countryProfile(t, models.Mexico)
	cases := map[int]float64{720: 10, 700: 10, 660: 5, 600: 0, 400: -15}
	for score, want := range cases {
		a := Assessment{Application: models.LoanApplication{CreditBureauScore: ip(score)}, Profile: mx}
		got, ok := bureauSignal(a)
		assert.True(t, ok)
		assert.Equal(t, want, got.Points, score)
	}

	_, ok := bureauSignal(Assessment{Profile: mx})
	assert.False(t, ok)
}
