package sim

import "fmt"

// Fixed cache geometry. Only the L2 associativity can be changed at start time.
const (
	BlockSize     = 64     // bytes per cache block
	L1ICacheSize  = 32768  // 32 KiB instruction cache
	L1DCacheSize  = 32768  // 32 KiB data cache
	L2CacheSize   = 262144 // 256 KiB unified cache
	L1INumBlocks  = L1ICacheSize / BlockSize
	L1DNumBlocks  = L1DCacheSize / BlockSize
	L2NumBlocks   = L2CacheSize / BlockSize
	WordsPerBlock = BlockSize / 4

	DefaultAssociativity = 4
)

// TimingModel holds per-access latencies in nanoseconds.
type TimingModel struct {
	L1AccessNs      float64 `yaml:"l1_access_ns"`
	L2AccessNs      float64 `yaml:"l2_access_ns"`
	DRAMAccessNs    float64 `yaml:"dram_access_ns"`
	IdleCycleNs     float64 `yaml:"idle_cycle_ns"`     // clock advance for ignore/flush records
	DRAMWritebackNs float64 `yaml:"dram_writeback_ns"` // 0 = write-backs are asynchronous
}

// EnergyModel holds the active (read/write) and idle energy charged per event.
type EnergyModel struct {
	L1ActiveEnergy   float64 `yaml:"l1_active_energy"`
	L2ActiveEnergy   float64 `yaml:"l2_active_energy"`
	DRAMActiveEnergy float64 `yaml:"dram_active_energy"`
	L1IdleEnergy     float64 `yaml:"l1_idle_energy"`
	L2IdleEnergy     float64 `yaml:"l2_idle_energy"`
	DRAMIdleEnergy   float64 `yaml:"dram_idle_energy"`
}

// HierarchyConfig groups every parameter the simulator reads at construction.
type HierarchyConfig struct {
	Associativity int // L2 ways per set (positive, even)
	Seed          int64
	Timing        TimingModel
	Energy        EnergyModel
}

// DefaultTimingModel returns the latencies used when no model file is supplied.
func DefaultTimingModel() TimingModel {
	return TimingModel{
		L1AccessNs:      0.5,
		L2AccessNs:      5,
		DRAMAccessNs:    50,
		IdleCycleNs:     0.5,
		DRAMWritebackNs: 0,
	}
}

// DefaultEnergyModel returns the energy constants used when no model file is supplied.
func DefaultEnergyModel() EnergyModel {
	return EnergyModel{
		L1ActiveEnergy:   1,
		L2ActiveEnergy:   2,
		DRAMActiveEnergy: 4,
		L1IdleEnergy:     0.5,
		L2IdleEnergy:     0.8,
		DRAMIdleEnergy:   0.8,
	}
}

// NewHierarchyConfig builds a config with default timing and energy.
func NewHierarchyConfig(associativity int, seed int64) HierarchyConfig {
	return HierarchyConfig{
		Associativity: associativity,
		Seed:          seed,
		Timing:        DefaultTimingModel(),
		Energy:        DefaultEnergyModel(),
	}
}

// NumSets returns the number of L2 sets for the configured associativity.
func (c HierarchyConfig) NumSets() int {
	return L2NumBlocks / c.Associativity
}

// ValidateAssociativity reports whether ways is usable as an L2 associativity.
func ValidateAssociativity(ways int) error {
	if ways <= 0 || ways%2 != 0 {
		return &ConfigError{Field: "associativity", Reason: fmt.Sprintf("%d is not a positive even integer", ways)}
	}
	if ways > L2NumBlocks {
		return &ConfigError{Field: "associativity", Reason: fmt.Sprintf("%d exceeds the %d blocks in L2", ways, L2NumBlocks)}
	}
	return nil
}

// Validate checks the associativity and that no timing or energy value is negative.
func (c HierarchyConfig) Validate() error {
	if err := ValidateAssociativity(c.Associativity); err != nil {
		return err
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"l1_access_ns", c.Timing.L1AccessNs},
		{"l2_access_ns", c.Timing.L2AccessNs},
		{"dram_access_ns", c.Timing.DRAMAccessNs},
		{"idle_cycle_ns", c.Timing.IdleCycleNs},
		{"dram_writeback_ns", c.Timing.DRAMWritebackNs},
		{"l1_active_energy", c.Energy.L1ActiveEnergy},
		{"l2_active_energy", c.Energy.L2ActiveEnergy},
		{"dram_active_energy", c.Energy.DRAMActiveEnergy},
		{"l1_idle_energy", c.Energy.L1IdleEnergy},
		{"l2_idle_energy", c.Energy.L2IdleEnergy},
		{"dram_idle_energy", c.Energy.DRAMIdleEnergy},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return &ConfigError{Field: f.name, Reason: fmt.Sprintf("must be >= 0, got %g", f.value)}
		}
	}
	return nil
}
