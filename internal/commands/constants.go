package commands

// OptionsUsage is the generic usage string shown for commands whose
// arguments are all flags (no positional operands).
const OptionsUsage = "[OPTIONS]"
