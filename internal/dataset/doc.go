// Package dataset turns a parsed trajectory into fixed-length training
// sequences in the Hamiltonian state convention.
//
// The pipeline is a pure sequential transform over the timestep index
// space:
//
//   - [FlattenHalves] reshapes one [particles × fields] table into a
//     position-half / momentum-half state vector.
//   - [Converter] builds one [Record] per window: the state sequence x,
//     its time derivative dx_dt, and a rasterized frame per step.
//   - [Assembler] subsamples by stride, cuts the trajectory into
//     windows, optionally shuffles them with a seeded generator, and
//     splits them into disjoint train and test streams.
//
// Window conversion is independent per window, so a [Stream] fans it out
// across a small worker pool while still delivering records in window
// order.
package dataset
