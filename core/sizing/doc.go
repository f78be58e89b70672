// Package sizing computes GO/NO-GO charging infrastructure estimates for
// electric vehicle fleets. Given fleet volumetrics it derives daily energy
// demand, picks AC or DC hardware, and returns CAPEX, hardware-only payback
// and ESG indicators. The computation is pure and deterministic.
package sizing
