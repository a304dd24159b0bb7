package profiles

import "github.com/Dan9191/mortgage-service/internal/models"

func ptr(v float64) *float64 { return &v }

func lenders(names, notes []string, adjustments []float64) []models.LenderProfile {
	out := make([]models.LenderProfile, len(names))
	for i := range names {
		out[i] = models.LenderProfile{
			Name:               names[i],
			BaseAffinityWeight: 85 + float64(i)*3,
			Note:               notes[i],
			RateAdjustment:     adjustments[i],
		}
	}
	return out
}

var genericDocuments = []string{
	"Identificación oficial",
	"Comprobante de ingresos",
	"Comprobante de domicilio",
	"Historial crediticio",
}

func builtin() []models.CountryProfile {
	return []models.CountryProfile{
		{
			Code:                    models.Spain,
			Name:                    "España",
			Currency:                models.Currency{Code: "EUR", Symbol: "€", Locale: "es-ES", Decimals: 2},
			TaxesAndFeesRate:        0.10,
			MinimumDownPaymentRatio: 0.20,
			MaxDTI:                  35,
			MaxLTV:                  80,
			IndexName:               "Euribor 12M",
			ReferenceIndexRate:      ptr(3.5),
			DefaultSpread:           ptr(1.0),
			DefaultAnnualRate:       2.60,
			MaxTermYears:            30,
			MinimumAge:              18,
			LegalMaxAge:             75,
			MinimumScore:            50,
			MinJobTenureMonths:      12,
			IncomeBrackets: []models.IncomeBracket{
				{Above: 5000, Bonus: 20}, {Above: 3000, Bonus: 15}, {Above: 2000, Bonus: 10}, {Above: 1000, Bonus: 5},
			},
			HighLiquidityThreshold: 50_000,
			Lenders: lenders(
				[]string{"Santander", "BBVA", "CaixaBank", "Sabadell"},
				[]string{"Acepta DTI 40%", "Estricto con nómina", "Bueno para funcionarios", "Flexible en LTV"},
				[]float64{0, -0.10, 0.05, 0.15},
			),
			RequiredDocuments: []string{
				"DNI/NIE vigente",
				"Últimas 3 nóminas",
				"Vida laboral",
				"Última declaración de la renta",
				"Contrato de trabajo",
				"Certificado de ingresos bancarios",
				"Nota simple de la propiedad",
			},
		},
		{
			Code:                       models.Colombia,
			Name:                       "Colombia",
			Currency:                   models.Currency{Code: "COP", Symbol: "$", Locale: "es-CO", Decimals: 0},
			TaxesAndFeesRate:           0.04,
			MinimumDownPaymentRatio:    0.30,
			SubsidizedDownPaymentRatio: 0.05,
			MaxDTI:                     30,
			MaxLTV:                     70,
			DefaultAnnualRate:          13.5,
			MaxTermYears:               30,
			MinimumAge:                 18,
			LegalMaxAge:                75,
			MinimumScore:               50,
			MinJobTenureMonths:         12,
			MinBureauScore:             600,
			BureauScale:                models.BureauScale{Name: "Datacrédito", Excellent: 800, Good: 720, Fair: 650},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 20_000_000, Bonus: 20}, {Above: 12_000_000, Bonus: 15}, {Above: 6_000_000, Bonus: 10}, {Above: 3_000_000, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"VIS": 25, "VIP": 25},
			IncomeWithholdingRate:  0.10,
			MinimumVitalExpenses:   1_423_500,
			HighLiquidityThreshold: 150_000_000,
			Lenders: lenders(
				[]string{"Bancolombia", "Davivienda", "BBVA Colombia", "Banco de Bogotá"},
				[]string{"Líder en hipotecas", "Buenos plazos", "Tasas competitivas", "Amplia cobertura"},
				[]float64{0.3, 0.2, 0, 0.4},
			),
			RequiredDocuments: []string{
				"Cédula de ciudadanía",
				"Certificado de ingresos y retención",
				"Extractos bancarios (últimos 3 meses)",
				"Certificado laboral",
				"Declaración de renta",
				"Certificado de tradición y libertad",
				"Avalúo comercial",
			},
		},
		{
			Code:                    models.Mexico,
			Name:                    "México",
			Currency:                models.Currency{Code: "MXN", Symbol: "$", Locale: "es-MX", Decimals: 2},
			TaxesAndFeesRate:        0.06,
			MinimumDownPaymentRatio: 0.20,
			MaxDTI:                  30,
			MaxLTV:                  80,
			DefaultAnnualRate:       10.5,
			MaxTermYears:            20,
			MinimumAge:              18,
			LegalMaxAge:             80,
			MinimumScore:            50,
			MinJobTenureMonths:      24,
			BureauScale:             models.BureauScale{Name: "Buró de Crédito", Excellent: 700, Good: 650, Fair: 580},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 100_000, Bonus: 20}, {Above: 60_000, Bonus: 15}, {Above: 35_000, Bonus: 10}, {Above: 20_000, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"INFONAVIT": 10, "FOVISSSTE": 10},
			HighLiquidityThreshold: 1_000_000,
			Lenders: lenders(
				[]string{"BBVA México", "Banorte", "Santander MX", "HSBC México"},
				[]string{"Mayor cartera hipotecaria", "Buenas tasas fijas", "Flexible documentación", "Promociones especiales"},
				[]float64{0, -0.20, 0.10, 0.15},
			),
			RequiredDocuments: []string{
				"INE vigente",
				"Comprobante de domicilio (menos de 3 meses)",
				"Comprobante de ingresos (3 meses)",
				"Estados de cuenta bancarios",
				"Comprobante de antigüedad laboral",
				"Aval (si aplica)",
			},
		},
		{
			Code:                    models.Argentina,
			Name:                    "Argentina",
			Currency:                models.Currency{Code: "ARS", Symbol: "$", Locale: "es-AR", Decimals: 2},
			TaxesAndFeesRate:        0.08,
			MinimumDownPaymentRatio: 0.25,
			MaxDTI:                  25,
			MaxLTV:                  75,
			DefaultAnnualRate:       8.0,
			MaxTermYears:            20,
			MinimumAge:              18,
			LegalMaxAge:             75,
			MinimumScore:            50,
			MinJobTenureMonths:      12,
			BureauScale:             models.BureauScale{Name: "Veraz", Excellent: 800, Good: 650, Fair: 500},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 5_000_000, Bonus: 20}, {Above: 3_000_000, Bonus: 15}, {Above: 1_500_000, Bonus: 10}, {Above: 800_000, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"PROCREAR": 10},
			HighLiquidityThreshold: 50_000_000,
			Lenders: lenders(
				[]string{"Banco Nación", "Banco Provincia", "Santander AR", "BBVA Argentina"},
				[]string{"Créditos UVA", "Tasas subsidiadas", "Préstamos en dólares", "Plazos flexibles"},
				[]float64{-0.50, -0.25, 0.50, 0.25},
			),
			RequiredDocuments: genericDocuments,
		},
		{
			Code:                       models.Chile,
			Name:                       "Chile",
			Currency:                   models.Currency{Code: "CLP", Symbol: "$", Locale: "es-CL", Decimals: 0},
			TaxesAndFeesRate:           0.03,
			MinimumDownPaymentRatio:    0.20,
			SubsidizedDownPaymentRatio: 0.10,
			MaxDTI:                     35,
			MaxLTV:                     80,
			DefaultAnnualRate:          4.5,
			MaxTermYears:               30,
			MinimumAge:                 18,
			LegalMaxAge:                80,
			MinimumScore:               50,
			MinJobTenureMonths:         12,
			BureauScale:                models.BureauScale{Name: "Dicom", Excellent: 800, Good: 650, Fair: 500},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 5_000_000, Bonus: 20}, {Above: 3_000_000, Bonus: 15}, {Above: 1_800_000, Bonus: 10}, {Above: 1_000_000, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"DS1": 10, "DS19": 10},
			HighLiquidityThreshold: 50_000_000,
			Lenders: lenders(
				[]string{"Banco de Chile", "BancoEstado", "Santander Chile", "Scotiabank CL"},
				[]string{"Líder en hipotecas", "Subsidios estatales", "Buenos beneficios", "Tasas competitivas"},
				[]float64{0, -0.15, 0.10, 0.05},
			),
			RequiredDocuments: genericDocuments,
		},
		{
			Code:                       models.Peru,
			Name:                       "Perú",
			Currency:                   models.Currency{Code: "PEN", Symbol: "S/", Locale: "es-PE", Decimals: 2},
			TaxesAndFeesRate:           0.05,
			MinimumDownPaymentRatio:    0.10,
			SubsidizedDownPaymentRatio: 0.075,
			MaxDTI:                     30,
			MaxLTV:                     90,
			DefaultAnnualRate:          8.5,
			MaxTermYears:               25,
			MinimumAge:                 18,
			LegalMaxAge:                75,
			MinimumScore:               50,
			MinJobTenureMonths:         12,
			BureauScale:                models.BureauScale{Name: "Sentinel", Excellent: 750, Good: 600, Fair: 450},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 20_000, Bonus: 20}, {Above: 12_000, Bonus: 15}, {Above: 7_000, Bonus: 10}, {Above: 3_500, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"MIVIVIENDA": 10, "TECHO_PROPIO": 10},
			HighLiquidityThreshold: 150_000,
			Lenders: lenders(
				[]string{"BCP", "Interbank", "BBVA Perú", "Scotiabank PE"},
				[]string{"Mayor cartera", "Rapidez en aprobación", "Buenas condiciones", "Tasas promocionales"},
				[]float64{0, 0.10, 0.05, -0.10},
			),
			RequiredDocuments: genericDocuments,
		},
		{
			Code:                    models.USA,
			Name:                    "USA",
			Currency:                models.Currency{Code: "USD", Symbol: "$", Locale: "en-US", Decimals: 2},
			TaxesAndFeesRate:        0.03,
			MinimumDownPaymentRatio: 0.20,
			MaxDTI:                  43,
			MaxLTV:                  80,
			DefaultAnnualRate:       6.8,
			MaxTermYears:            30,
			MinimumAge:              18,
			MinimumScore:            50,
			MinJobTenureMonths:      24,
			MinBureauScore:          620,
			BureauScale:             models.BureauScale{Name: "FICO", Excellent: 760, Good: 700, Fair: 640},
			IncomeBrackets: []models.IncomeBracket{
				{Above: 15_000, Bonus: 20}, {Above: 10_000, Bonus: 15}, {Above: 7_000, Bonus: 10}, {Above: 4_000, Bonus: 5},
			},
			HousingCategoryBonus:   map[string]float64{"FHA": 5, "VA": 5},
			HighLiquidityThreshold: 100_000,
			Lenders: lenders(
				[]string{"Wells Fargo", "Chase", "Bank of America", "Quicken Loans"},
				[]string{"Gran variedad de productos", "Tasas competitivas", "Preferred Rewards", "100% online"},
				[]float64{0.05, -0.05, 0, 0.10},
			),
			RequiredDocuments: []string{
				"Social Security Number",
				"Government-issued ID",
				"W-2 forms (last 2 years)",
				"Pay stubs (last 30 days)",
				"Bank statements (last 2 months)",
				"Tax returns (last 2 years)",
			},
		},
	}
}
