package scoring

import "github.com/shopspring/decimal"

// DefaultRules is the global rule set shipped with the service. The seed
// migration inserts the same rows.
func DefaultRules() []Rule {
	rules := []Rule{
		standardPerUnit(StatRuns, CategoryBatting, "1", 0),
		standardPerUnit(StatFours, CategoryBatting, "1", 0),
		standardPerUnit(StatSixes, CategoryBatting, "2", 0),
		standardFlat(StatHalfCentury, "8", 50),
		standardFlat(StatCentury, "8", 100),

		band(StatStrikeRate, CategoryBatting, "[0,30]", "-6"),
		band(StatStrikeRate, CategoryBatting, "(30,40)", "-4"),
		band(StatStrikeRate, CategoryBatting, "[40,50]", "-2"),
		band(StatStrikeRate, CategoryBatting, "[100,120)", "2"),
		band(StatStrikeRate, CategoryBatting, "[120,140)", "4"),
		band(StatStrikeRate, CategoryBatting, "[140,)", "6"),

		standardPerUnit(StatWickets, CategoryBowling, "25", 0),
		standardPerUnit(StatThreeWickets, CategoryBowling, "4", 3),
		standardPerUnit(StatFiveWickets, CategoryBowling, "5", 5),

		band(StatEconomy, CategoryBowling, "[0,2.5]", "6"),
		band(StatEconomy, CategoryBowling, "(2.5,3.5)", "4"),
		band(StatEconomy, CategoryBowling, "[3.5,4.5]", "2"),
		band(StatEconomy, CategoryBowling, "[7,8]", "-2"),
		band(StatEconomy, CategoryBowling, "(8,9]", "-4"),
		band(StatEconomy, CategoryBowling, "(9,)", "-6"),

		standardPerUnit(StatCatches, CategoryFielding, "8", 0),
		standardPerUnit(StatThreeCatches, CategoryFielding, "4", 3),

		multiplier(StatCaptain, "2"),
		multiplier(StatViceCaptain, "1.5"),
	}
	SortRules(rules)
	return rules
}

func standardPerUnit(stat string, category Category, points string, threshold int) Rule {
	return Rule{
		Stat:          stat,
		Category:      category,
		Mode:          ModeStandard,
		PerUnitPoints: decimal.NewNullDecimal(decimal.RequireFromString(points)),
		Threshold:     threshold,
	}
}

func standardFlat(stat string, points string, threshold int) Rule {
	return Rule{
		Stat:       stat,
		Category:   CategoryBatting,
		Mode:       ModeStandard,
		FlatPoints: decimal.NewNullDecimal(decimal.RequireFromString(points)),
		Threshold:  threshold,
	}
}

func band(stat string, category Category, rng, points string) Rule {
	b := MustParseBand(rng)
	return Rule{
		Stat:       stat,
		Category:   category,
		Mode:       ModeBand,
		Band:       &b,
		FlatPoints: decimal.NewNullDecimal(decimal.RequireFromString(points)),
	}
}

func multiplier(stat, value string) Rule {
	return Rule{
		Stat:       stat,
		Category:   CategoryLeadership,
		Mode:       ModeStandard,
		Multiplier: decimal.NewNullDecimal(decimal.RequireFromString(value)),
	}
}
