package enrich

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"expodocs/internal/dates"
	"expodocs/internal/domain"
)

// Static is the enrichment provider of last resort. It synthesizes a
// plausible record from the product name alone and never fails, which lets
// the retry chain guarantee that document composition always has data.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Name() string { return "static" }

func (s *Static) SafetyData(_ context.Context, productName string) (*domain.ProductSafetyData, error) {
	return DefaultSafetyData(productName), nil
}

func (s *Static) RestrictedComponents(_ context.Context, _ string) ([]domain.RestrictedComponent, error) {
	return DefaultRestrictedComponents(), nil
}

func (s *Static) ItemData(_ context.Context, productName string) (*domain.ItemEnrichment, error) {
	return DefaultItemData(productName), nil
}

// DefaultSafetyData returns the citrus-oil profile used when no provider can
// produce real data. Only the name-derived fields vary by product.
func DefaultSafetyData(productName string) *domain.ProductSafetyData {
	name := strings.TrimSpace(productName)
	if name == "" {
		name = "Essential Oil"
	}
	return &domain.ProductSafetyData{
		ProductName:          name,
		BiologicalDefinition: fmt.Sprintf("Natural essential oil extracted from %s. Contains naturally occurring volatile compounds and terpenes.", name),
		INCIName:             name,
		CASNo:                "5989-27-5",
		ECNo:                 "227-813-5",
		EINECSNo:             "202-794-6",
		Appearance:           "Clear, colorless to pale yellow liquid",
		Colour:               "Colorless to pale yellow",
		Odour:                "Characteristic fresh citrus aroma",
		RelativeDensity:      "0.849–0.859 @ 20°C",
		FlashPointC:          "40 °C (c.c.)",
		RefractiveIndex:      "1.470–1.478 @ 20°C",
		MeltingPointC:        "Not applicable - liquid at room temperature",
		BoilingPointC:        "165–175°C (approximate, mixture)",
		VapourPressure:       "Approximately 50–100 Pa @ 20°C",
		SolubilityInWater:    "Insoluble in water; soluble in alcohols and oils",
		AutoIgnitionTempC:    "370–380°C",
		Solubility:           "Soluble in ethanol, acetone, ether, and oils",
		SpecificGravity:      "0.900–0.950 @ 20°C",
		OpticalRotation:      "+30 to +45 degrees",
		ExtractionMethod:     "Cold pressing and/or steam distillation",
		ActiveConstituents:   "d-Limonene (55-75%); β-Myrcene (15-20%); α-Pinene (8-12%); Citral (2-5%)",
		Constituents: []domain.Constituent{
			{
				Percentage:     "55-75",
				Name:           "d-Limonene",
				CASNo:          "5989-27-5",
				ECNo:           "227-813-5",
				Classification: "Flam. Liq. 3, H226; Skin Irrit. 2, H315; Skin Sens. 1, H317; Asp. Tox. 1, H304; Aquatic Acute 1, H400; Aquatic Chronic 1, H410",
			},
			{
				Percentage:     "15-20",
				Name:           "β-Myrcene",
				CASNo:          "123-35-3",
				ECNo:           "204-622-5",
				Classification: "Flam. Liq. 3, H226; Asp. Tox. 1, H304; Aquatic Chronic 2, H411",
			},
			{
				Percentage:     "8-12",
				Name:           "α-Pinene",
				CASNo:          "80-56-8",
				ECNo:           "201-291-3",
				Classification: "Flam. Liq. 3, H226; Skin Irrit. 2, H315; Skin Sens. 1, H317",
			},
			{
				Percentage:     "2-5",
				Name:           "Citral",
				CASNo:          "5392-40-5",
				ECNo:           "226-394-6",
				Classification: "Skin Irrit. 2, H315; Skin Sens. 1, H317",
			},
		},
	}
}

// DefaultRestrictedComponents returns the IFRA component table used when no
// provider can produce a product-specific one.
func DefaultRestrictedComponents() []domain.RestrictedComponent {
	return []domain.RestrictedComponent{
		{ComponentName: "Eugenol", CASNo: "97-53-0", PercentageLevel: "0.40%", IFRAStandard: "Restriction Std (non-QRA cat)"},
		{ComponentName: "Linalool", CASNo: "78-70-6", PercentageLevel: "3.50%", IFRAStandard: "Restriction Std (QRA cat)"},
		{ComponentName: "Methyl Eugenol", CASNo: "93-15-2", PercentageLevel: "0.10%", IFRAStandard: "Restriction Std (non-QRA cat)"},
		{ComponentName: "β-Caryophyllene", CASNo: "87-44-5", PercentageLevel: "1.50%", IFRAStandard: "Not currently restricted"},
	}
}

// DefaultItemData fabricates manufacturing metadata: a dated batch number,
// a manufacture date two months back and a two-year shelf life.
func DefaultItemData(productName string) *domain.ItemEnrichment {
	mfg := dates.MonthsAgo(2)
	return &domain.ItemEnrichment{
		BatchNumber:   fmt.Sprintf("%04d-%02d-%05d", mfg.Year(), int(mfg.Month()), rand.Intn(100000)),
		MfgDate:       dates.Format(mfg),
		ExpDate:       dates.Format(mfg.AddDate(2, 0, 0)),
		BotanicalName: strings.TrimSpace(productName),
	}
}

// LotNumber generates a lot identifier in the exporter's house format,
// e.g. "SEI/AI-042/26".
func LotNumber() string {
	return fmt.Sprintf("SEI/AI-%03d/%02d", rand.Intn(1000), time.Now().Year()%100)
}
