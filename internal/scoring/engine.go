// internal/scoring/engine.go
package scoring

import (
	"math"
	"strings"
)

// Engine scores deals against a fixed Model. It is stateless and safe for
// concurrent use; two calls with the same input produce identical results.
type Engine struct {
	model Model
}

// NewEngine binds an engine to a model. Use DefaultModel() unless a specific
// version is pinned in configuration.
func NewEngine(model Model) *Engine {
	return &Engine{model: model}
}

// Model returns the bound model.
func (e *Engine) Model() Model {
	return e.model
}

// Score computes the four-pillar merit score. It never fails: out-of-range
// rates are clamped before the pillar math so every deal stays sortable.
func (e *Engine) Score(in Input) Result {
	in = e.normalize(in)

	distress := e.scoreEconomicDistress(in)
	impact := e.scoreImpactPotential(in)
	readiness := e.scoreProjectReadiness(in)
	missionFit := e.scoreMissionFit(in)

	total := distress.Score + impact.Score + readiness.Score + missionFit.Score
	tier := e.classifyTier(distress.Score, impact.Score)

	flags := EligibilityFlags{
		NMTCEligible:          in.PovertyRate >= e.model.NMTCPovertyFloor || in.MedianFamilyIncome <= e.model.NMTCIncomeCeiling,
		SeverelyDistressed:    in.PovertyRate >= e.model.SeverePovertyFloor || in.UnemploymentRate >= e.model.SevereUnemployment,
		QualifiedCensusTracts: in.PovertyRate >= e.model.QCTPovertyFloor,
	}

	reasonCodes := []string{}
	if distress.Score < e.model.Tier2DistressFloor {
		reasonCodes = append(reasonCodes, ReasonLowDistress)
	}
	if impact.Score < e.model.Tier2ImpactFloor {
		reasonCodes = append(reasonCodes, ReasonLowImpact)
	}
	if readiness.Score < e.model.NotReadyFloor {
		reasonCodes = append(reasonCodes, ReasonNotReady)
	}
	if missionFit.Score < e.model.PoorFitFloor {
		reasonCodes = append(reasonCodes, ReasonPoorFit)
	}

	return Result{
		TotalScore:   total,
		Tier:         tier,
		ModelVersion: e.model.Version,
		Breakdown: Breakdown{
			EconomicDistress: distress,
			ImpactPotential:  impact,
			ProjectReadiness: readiness,
			MissionFit:       missionFit,
		},
		EligibilityFlags: flags,
		ReasonCodes:      reasonCodes,
	}
}

// normalize clamps external data of variable quality into the declared
// domain. Bad rates are recovered, never rejected.
func (e *Engine) normalize(in Input) Input {
	in.PovertyRate = clampFloat(in.PovertyRate, 0, 100)
	in.MedianFamilyIncome = clampFloat(in.MedianFamilyIncome, 0, 1000)
	in.UnemploymentRate = clampFloat(in.UnemploymentRate, 0, 100)
	in.CommittedSourcesPercent = clampFloat(in.CommittedSourcesPercent, 0, 100)
	if in.TotalProjectCost < 0 {
		in.TotalProjectCost = 0
	}
	if in.JobsCreated < 0 {
		in.JobsCreated = 0
	}
	if in.JobsRetained < 0 {
		in.JobsRetained = 0
	}
	if in.HousingUnits < 0 {
		in.HousingUnits = 0
	}
	if in.AffordableHousingUnits < 0 {
		in.AffordableHousingUnits = 0
	}
	if in.DealSize < 0 {
		in.DealSize = 0
	}
	return in
}

func (e *Engine) scoreEconomicDistress(in Input) DistressPillar {
	m := e.model

	// Continuous sub-scores, each 0-10
	povertyPercentile := math.Min(10, (in.PovertyRate/m.PovertyCeiling)*10)
	mfiScore := math.Min(10, math.Max(0, (m.MFIBase-in.MedianFamilyIncome)/m.MFIDivisor))
	unemploymentPercentile := math.Min(10, (in.UnemploymentRate/m.UnemploymentCeiling)*10)

	persistentPoverty := 0
	if in.PersistentPovertyCounty {
		persistentPoverty = m.PersistentPovertyPts
	}
	nonMetro := 0
	if in.NonMetro {
		nonMetro = m.NonMetroPts
	}

	capitalDesert := 0
	switch {
	case in.PovertyRate > m.CapitalDesertPoverty && in.NonMetro:
		capitalDesert = m.CapitalDesertHighPts
	case in.PovertyRate > m.CapitalDesertPoverty:
		capitalDesert = m.CapitalDesertLowPts
	}

	// The continuous measures are noisier proxies than the categorical
	// bonuses, so they are down-weighted before summing.
	score := int(math.Round(
		m.PercentileWeight*(povertyPercentile+mfiScore+unemploymentPercentile) +
			float64(persistentPoverty+nonMetro+capitalDesert)))
	if score > m.DistressMax {
		score = m.DistressMax
	}

	return DistressPillar{
		Score:    score,
		MaxScore: m.DistressMax,
		Components: DistressComponents{
			PovertyPercentile:      int(math.Round(povertyPercentile)),
			MFIScore:               int(math.Round(mfiScore)),
			UnemploymentPercentile: int(math.Round(unemploymentPercentile)),
			PersistentPoverty:      persistentPoverty,
			NonMetro:               nonMetro,
			CapitalDesert:          capitalDesert,
		},
	}
}

func (e *Engine) scoreImpactPotential(in Input) ImpactPillar {
	m := e.model

	// Jobs per $1M invested; a zero-cost project contributes nothing rather
	// than dividing by zero.
	jobCreation := 0.0
	if in.TotalProjectCost > 0 {
		jobsPerMillion := float64(in.JobsCreated+in.JobsRetained) / (in.TotalProjectCost / 1_000_000)
		jobCreation = math.Min(m.JobCreationMax, jobsPerMillion*m.JobsPerMillionFactor)
	}

	essentialServices := 0
	if e.hasEssentialService(in.TargetSectors) {
		essentialServices = m.EssentialServicePts
	}

	// Affordable-housing share; neutral when no unit data is supplied.
	lowIncomeResidents := float64(m.AffordableNeutralPts)
	if in.AffordableHousingUnits > 0 {
		units := in.HousingUnits
		if units == 0 {
			units = 1
		}
		lowIncomeResidents = math.Min(m.AffordableShareMax,
			(float64(in.AffordableHousingUnits)/float64(units))*m.AffordableShareMax)
	}

	catalyticEffect := m.CatalyticLowPts
	switch {
	case in.TotalProjectCost > m.CatalyticHighCost:
		catalyticEffect = m.CatalyticHighPts
	case in.TotalProjectCost > m.CatalyticMidCost:
		catalyticEffect = m.CatalyticMidPts
	}

	leverage := m.LeverageLowPts
	switch {
	case in.CommittedSourcesPercent > m.LeverageHighPct:
		leverage = m.LeverageHighPts
	case in.CommittedSourcesPercent > m.LeverageMidPct:
		leverage = m.LeverageMidPts
	}

	score := int(math.Round(jobCreation + float64(essentialServices) + lowIncomeResidents +
		float64(catalyticEffect) + float64(leverage)))
	if score > m.ImpactMax {
		score = m.ImpactMax
	}

	return ImpactPillar{
		Score:    score,
		MaxScore: m.ImpactMax,
		Components: ImpactComponents{
			JobCreation:        int(math.Round(jobCreation)),
			EssentialServices:  essentialServices,
			LowIncomeResidents: int(math.Round(lowIncomeResidents)),
			CatalyticEffect:    catalyticEffect,
			Leverage:           leverage,
		},
	}
}

func (e *Engine) hasEssentialService(sectors []string) bool {
	for _, keyword := range e.model.EssentialServiceKeywords {
		for _, sector := range sectors {
			if strings.Contains(strings.ToLower(sector), keyword) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) scoreProjectReadiness(in Input) ReadinessPillar {
	m := e.model

	siteControl := m.SiteControlPts[strings.ToLower(in.SiteControl)]

	proForma := 0
	if in.HasProForma {
		proForma = m.ProFormaPts
	}
	thirdPartyReports := 0
	if in.HasThirdPartyReports {
		thirdPartyReports = m.ReportsPts
	}

	committedSources := 0
	for _, band := range m.CommittedBands {
		if in.CommittedSourcesPercent >= band.MinPct {
			committedSources = band.Points
			break
		}
	}

	timeline := 0
	if in.TimelineRealistic {
		timeline = m.TimelinePts
	}

	score := siteControl + proForma + thirdPartyReports + committedSources + timeline
	if score > m.ReadinessMax {
		score = m.ReadinessMax
	}

	return ReadinessPillar{
		Score:    score,
		MaxScore: m.ReadinessMax,
		Components: ReadinessComponents{
			SiteControl:       siteControl,
			ProForma:          proForma,
			ThirdPartyReports: thirdPartyReports,
			CommittedSources:  committedSources,
			Timeline:          timeline,
		},
	}
}

func (e *Engine) scoreMissionFit(in Input) MissionFitPillar {
	m := e.model

	if in.CDECriteria == nil {
		// No counterparty criteria: neutral score, not an error.
		return MissionFitPillar{
			Score:    m.NeutralMissionFitPts,
			MaxScore: m.MissionFitMax,
			Components: MissionFitComponents{
				SectorAlignment:    m.NeutralMissionFitPts,
				GeographyAlignment: 0,
				DealSizeAlignment:  0,
			},
		}
	}

	sectorAlignment := 0
	if sectorsOverlap(in.TargetSectors, in.CDECriteria.TargetSectors) {
		sectorAlignment = m.SectorAlignmentPts
	}

	// Geography currently awards a constant pass; real overlap logic needs
	// tract-level service-area data that the criteria object does not carry.
	geographyAlignment := m.GeographyAlignmentPts

	dealSizeAlignment := 0
	if in.DealSize >= in.CDECriteria.MinDealSize && in.DealSize <= in.CDECriteria.MaxDealSize {
		dealSizeAlignment = m.DealSizeAlignmentPts
	}

	score := sectorAlignment + geographyAlignment + dealSizeAlignment
	if score > m.MissionFitMax {
		score = m.MissionFitMax
	}

	return MissionFitPillar{
		Score:    score,
		MaxScore: m.MissionFitMax,
		Components: MissionFitComponents{
			SectorAlignment:    sectorAlignment,
			GeographyAlignment: geographyAlignment,
			DealSizeAlignment:  dealSizeAlignment,
		},
	}
}

func sectorsOverlap(projectSectors, cdeSectors []string) bool {
	for _, sector := range projectSectors {
		for _, cdeSector := range cdeSectors {
			if strings.Contains(strings.ToLower(sector), strings.ToLower(cdeSector)) {
				return true
			}
		}
	}
	return false
}

// classifyTier assigns the tier from the distress and impact pillar scores
// alone. Tier 1 requires both pillars strong; Tier 2 requires either.
func (e *Engine) classifyTier(distressScore, impactScore int) int {
	m := e.model
	if distressScore >= m.Tier1DistressFloor && impactScore >= m.Tier1ImpactFloor {
		return TierGreenlight
	}
	if distressScore >= m.Tier2DistressFloor || impactScore >= m.Tier2ImpactFloor {
		return TierWatchlist
	}
	return TierDefer
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
