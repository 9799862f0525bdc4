package model

import "time"

// Pathway represents a named connection between two nodes that buses
// can be scheduled on.  Each pathway offers one or more pathway
// options (alternative road choices with their own distance, timing
// and tolls).  This struct corresponds to a row in the `pathways`
// table.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – pathway name, unique among alive pathways.
//  OriginNodeID      – departure node.
//  DestinationNodeID – arrival node.
//  DistanceKm        – reference road distance in kilometres.
//  IsActive          – soft availability flag.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
//  DeletedAt         – soft-delete timestamp (nil while alive).
type Pathway struct {
	ID                uint64     `json:"id"`                  // pathways.id
	Name              string     `json:"name"`                // pathways.name
	OriginNodeID      uint64     `json:"originNodeId"`        // pathways.origin_node_id
	DestinationNodeID uint64     `json:"destinationNodeId"`   // pathways.destination_node_id
	DistanceKm        float64    `json:"distanceKm"`          // pathways.distance_km
	IsActive          bool       `json:"isActive"`            // pathways.is_active
	CreatedAt         time.Time  `json:"createdAt"`           // pathways.created_at
	UpdatedAt         time.Time  `json:"updatedAt"`           // pathways.updated_at
	DeletedAt         *time.Time `json:"deletedAt,omitempty"` // pathways.deleted_at (nullable)
}

// PathwayOption is one concrete way of driving a pathway: a distance,
// an expected duration, the average speed derived from the two, and an
// ordered list of toll passes.  Once an option is referenced by any
// schedule it is marked in use and can no longer be edited or removed.
// This struct corresponds to a row in the `pathway_options` table.
//
// AvgSpeedKmh is derived (distance / duration * 60) and recalculated
// whenever distance or duration changes; dependent toll pass times are
// rewritten in the same transaction.
//
// Fields:
//  ID          – primary key identifier.
//  PathwayID   – owning pathway.
//  Name        – option name, unique within its pathway.
//  DistanceKm  – road distance of this option in kilometres.
//  DurationMin – expected driving time in minutes.
//  AvgSpeedKmh – derived average speed in km/h.
//  InUse       – usage lock; true once any schedule references the option.
//  IsActive    – soft availability flag.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type PathwayOption struct {
	ID          uint64    `json:"id"`          // pathway_options.id
	PathwayID   uint64    `json:"pathwayId"`   // pathway_options.pathway_id
	Name        string    `json:"name"`        // pathway_options.name
	DistanceKm  float64   `json:"distanceKm"`  // pathway_options.distance_km
	DurationMin float64   `json:"durationMin"` // pathway_options.duration_min
	AvgSpeedKmh float64   `json:"avgSpeedKmh"` // pathway_options.avg_speed_kmh
	InUse       bool      `json:"inUse"`       // pathway_options.in_use
	IsActive    bool      `json:"isActive"`    // pathway_options.is_active
	CreatedAt   time.Time `json:"createdAt"`   // pathway_options.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // pathway_options.updated_at
}

// TollPass is one toll stop along a pathway option.  PassTimeMin is
// derived from the toll's distance from the origin and the option's
// average speed, so it is rewritten whenever the option's metrics
// change.  This struct corresponds to a row in the `toll_passes`
// table.
//
// Fields:
//  ID                   – primary key identifier.
//  PathwayOptionID      – owning option.
//  TollNodeID           – the TOLL node being crossed.
//  Sequence             – 1-based order of the toll along the option.
//  DistanceFromOriginKm – kilometres from the option's origin.
//  PassTimeMin          – derived minutes from departure to this toll.
type TollPass struct {
	ID                   uint64  `json:"id"`                   // toll_passes.id
	PathwayOptionID      uint64  `json:"pathwayOptionId"`      // toll_passes.pathway_option_id
	TollNodeID           uint64  `json:"tollNodeId"`           // toll_passes.toll_node_id
	Sequence             int     `json:"sequence"`             // toll_passes.sequence
	DistanceFromOriginKm float64 `json:"distanceFromOriginKm"` // toll_passes.distance_from_origin_km
	PassTimeMin          float64 `json:"passTimeMin"`          // toll_passes.pass_time_min
}
