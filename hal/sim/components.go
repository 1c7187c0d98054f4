package sim

import "github.com/machinekit/go-machinetalk/hal"

type pinDef struct {
	suffix string
	typ    hal.PinType
	dir    hal.PinDir
}

type component struct {
	pins   []pinDef
	update func(p pins)
}

var components = map[string]component{}

func register(name string, c component) {
	components[name] = c
}

var (
	bitIn0 = pinDef{"in0", hal.PinTypeBit, hal.PinDirIn}
	bitIn1 = pinDef{"in1", hal.PinTypeBit, hal.PinDirIn}
	bitOut = pinDef{"out", hal.PinTypeBit, hal.PinDirOut}
)

func init() {
	register("or2", component{
		pins:   []pinDef{bitIn0, bitIn1, bitOut},
		update: func(p pins) { p.set("out", p.get("in0") || p.get("in1")) },
	})
	register("and2", component{
		pins:   []pinDef{bitIn0, bitIn1, bitOut},
		update: func(p pins) { p.set("out", p.get("in0") && p.get("in1")) },
	})
	register("xor2", component{
		pins:   []pinDef{bitIn0, bitIn1, bitOut},
		update: func(p pins) { p.set("out", p.get("in0") != p.get("in1")) },
	})
	register("not", component{
		pins:   []pinDef{{"in", hal.PinTypeBit, hal.PinDirIn}, bitOut},
		update: func(p pins) { p.set("out", !p.get("in")) },
	})
}
