// Package savings assembles a household panel from the yearly files of a
// longitudinal survey and decomposes the wealth change of every household
// between two waves into savings and capital gains.
//
// The pipeline runs in stages, each a pure function of the previous stage's
// files and of explicit configuration:
//   - Year data: one table per survey year, variables renamed to their stable
//     crosswalk name, amounts optionally expressed in the dollars of a given
//     year (see Panel.YearData).
//   - Two-period data: one row per head of household of the end year, joined
//     with the family data of every wave of the timespan, move and composition
//     changes reconciled (see Panel.TwoPeriod).
//   - Savings: per asset class stock change, identified flow and capital gain,
//     and the household savings rate (see Calculator.Compute).
//
// Records are never dropped implicitly. Data-quality rules tag them with a
// Status in a cleaningStatus column, and KeepOnly is the explicit filter.
//
// This package serves as the foundational logic for the `psav` command-line
// tool.
package savings
