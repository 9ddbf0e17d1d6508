package met_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/windkit/airtraj/internal/met"
	"github.com/windkit/airtraj/internal/traj"
)

// sampleDataset mirrors a small weather model output: a 12-hour hourly time
// axis, a 3x3 grid, and aliased variable names.
func sampleDataset() *met.Dataset {
	times := make([]time.Time, 12)
	for i := range times {
		times[i] = time.Date(2023, 1, 1, i, 0, 0, 0, time.UTC)
	}
	lats := []float64{30, 40, 50}
	lons := []float64{-125, -115, -105}

	fill := func(base float64) met.Var {
		v := make(met.Var, len(times))
		for i := range v {
			v[i] = make([][]float64, len(lats))
			for j := range v[i] {
				row := make([]float64, len(lons))
				for k := range row {
					row[k] = base + float64(i*100+j*10+k)
				}
				v[i][j] = row
			}
		}
		return v
	}

	return &met.Dataset{
		Times: times,
		Lats:  lats,
		Lons:  lons,
		Vars: map[string]met.Var{
			"UGRD": fill(1000),
			"VGRD": fill(2000),
			"TMP":  fill(3000),
		},
	}
}

var _ = Describe("Normalize", func() {
	It("renames aliased variables to canonical keys", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())

		Expect(ds.HasVar("u")).To(BeTrue())
		Expect(ds.HasVar("v")).To(BeTrue())
		Expect(ds.HasVar("t")).To(BeTrue())
		Expect(ds.HasVar("UGRD")).To(BeFalse())
		Expect(ds.HasVar("VGRD")).To(BeFalse())
		Expect(ds.HasVar("TMP")).To(BeFalse())
	})

	It("leaves absent canonical names unset", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())

		Expect(ds.HasVar("w")).To(BeFalse())
		Expect(ds.HasVar("z")).To(BeFalse())
	})

	It("prefers the first matching alias", func() {
		ds := sampleDataset()
		ds.Vars["u"] = ds.Vars["UGRD"]

		norm := ds.Normalize(met.DefaultAliases())

		// "u" matched first, so "UGRD" survives untouched
		Expect(norm.HasVar("u")).To(BeTrue())
		Expect(norm.HasVar("UGRD")).To(BeTrue())
	})

	It("does not mutate the receiver", func() {
		ds := sampleDataset()
		_ = ds.Normalize(met.DefaultAliases())

		Expect(ds.HasVar("UGRD")).To(BeTrue())
		Expect(ds.HasVar("u")).To(BeFalse())
	})
})

var _ = Describe("Subset", func() {
	var ds *met.Dataset

	BeforeEach(func() {
		ds = sampleDataset().Normalize(met.DefaultAliases())
	})

	It("selects an inclusive hourly time window", func() {
		tr, err := met.ParseTimeRange("2023-01-01T02:00", "2023-01-01T05:00")
		Expect(err).NotTo(HaveOccurred())

		sub := ds.Subset(tr, met.Bounds{Min: -90, Max: 90}, met.Bounds{Min: -180, Max: 180})

		Expect(sub.Times).To(HaveLen(4))
		Expect(sub.Times[0]).To(Equal(time.Date(2023, 1, 1, 2, 0, 0, 0, time.UTC)))
		Expect(sub.Times[3]).To(Equal(time.Date(2023, 1, 1, 5, 0, 0, 0, time.UTC)))
	})

	It("selects inclusive spatial bounds independently per axis", func() {
		tr, err := met.ParseTimeRange("2023-01-01T00:00", "2023-01-01T11:00")
		Expect(err).NotTo(HaveOccurred())

		sub := ds.Subset(tr, met.Bounds{Min: 35, Max: 45}, met.Bounds{Min: -120, Max: -110})

		Expect(sub.Lats).To(Equal([]float64{40}))
		Expect(sub.Lons).To(Equal([]float64{-115}))
		Expect(sub.Times).To(HaveLen(12))

		// data is sliced consistently with the axes
		u := sub.Vars["u"]
		Expect(u).To(HaveLen(12))
		Expect(u[0]).To(HaveLen(1))
		Expect(u[0][0]).To(HaveLen(1))
		Expect(u[0][0][0]).To(Equal(1011.0)) // lat index 1, lon index 1 of the full grid
	})

	It("appends one provenance line per call and is idempotent", func() {
		tr, err := met.ParseTimeRange("2023-01-01T02:00", "2023-01-01T05:00")
		Expect(err).NotTo(HaveOccurred())
		latB := met.Bounds{Min: 35, Max: 45}
		lonB := met.Bounds{Min: -120, Max: -110}

		first := ds.Subset(tr, latB, lonB)
		second := first.Subset(tr, latB, lonB)

		Expect(second.Times).To(Equal(first.Times))
		Expect(second.Lats).To(Equal(first.Lats))
		Expect(second.Lons).To(Equal(first.Lons))
		Expect(second.Vars["u"]).To(Equal(first.Vars["u"]))

		Expect(second.History).To(HaveLen(len(first.History) + 1))
		last := second.History[len(second.History)-1]
		prev := second.History[len(second.History)-2]
		Expect(last).To(Equal(prev))
		Expect(second.HistoryString()).To(ContainSubstring(prev + "\n" + last))
	})

	It("records the requested bounds in the provenance line", func() {
		tr, err := met.ParseTimeRange("2023-01-01T02:00", "2023-01-01T05:00")
		Expect(err).NotTo(HaveOccurred())

		sub := ds.Subset(tr, met.Bounds{Min: 35, Max: 45}, met.Bounds{Min: -120, Max: -110})

		Expect(sub.HistoryString()).To(ContainSubstring("time=[2023-01-01T02:00, 2023-01-01T05:00]"))
		Expect(sub.HistoryString()).To(ContainSubstring("lat=[35, 45]"))
		Expect(sub.HistoryString()).To(ContainSubstring("lon=[-120, -110]"))
	})
})

var _ = Describe("Open", func() {
	writeGrid := func(dir string, doc map[string]any) string {
		data, err := json.Marshal(doc)
		Expect(err).NotTo(HaveOccurred())
		path := filepath.Join(dir, "grid.json")
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
		return path
	}

	It("falls back to the generic decoder when the netcdf engine rejects the file", func() {
		path := writeGrid(GinkgoT().TempDir(), map[string]any{
			"time":      []string{"2023-01-01T00:00", "2023-01-01T01:00"},
			"latitude":  []float64{30, 40},
			"longitude": []float64{-120, -110},
			"variables": map[string]any{
				"UGRD": [][][]float64{
					{{1, 2}, {3, 4}},
					{{5, 6}, {7, 8}},
				},
			},
		})

		ds, err := met.Open(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(ds.Times).To(HaveLen(2))
		Expect(ds.HasVar("UGRD")).To(BeTrue())
		Expect(ds.HistoryString()).To(ContainSubstring("generic json decoder"))
	})

	It("surfaces the fallback error when both decoders fail", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "garbage.bin")
		Expect(os.WriteFile(path, []byte("not a grid"), 0o644)).To(Succeed())

		_, err := met.Open(path)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a grid document whose variable shape disagrees with the axes", func() {
		path := writeGrid(GinkgoT().TempDir(), map[string]any{
			"time":      []string{"2023-01-01T00:00"},
			"latitude":  []float64{30, 40},
			"longitude": []float64{-120},
			"variables": map[string]any{
				"UGRD": [][][]float64{{{1}}},
			},
		})

		_, err := met.Open(path)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("VelocityField", func() {
	It("requires canonical wind components", func() {
		ds := sampleDataset()
		_, err := ds.VelocityField(0, traj.Nearest)
		Expect(err).To(MatchError(met.ErrMissingWind))
	})

	It("rejects a time index outside the axis", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())
		_, err := ds.VelocityField(99, traj.Nearest)
		Expect(err).To(HaveOccurred())
	})

	It("freezes one time slice into a steady-state field", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())
		field, err := ds.VelocityField(2, traj.Nearest)
		Expect(err).NotTo(HaveOccurred())

		u, v, err := field.Sample(40, -115)
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal(1211.0))
		Expect(v).To(Equal(2211.0))
	})

	It("reorders descending latitude axes", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())
		// flip latitude to the north-first layout archives use
		ds.Lats = []float64{50, 40, 30}

		field, err := ds.VelocityField(0, traj.Nearest)
		Expect(err).NotTo(HaveOccurred())

		// row 0 of the data is now latitude 50
		u, _, err := field.Sample(50, -125)
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(Equal(1000.0))
	})

	It("drives the trajectory integrator end to end", func() {
		ds := sampleDataset().Normalize(met.DefaultAliases())
		field, err := ds.VelocityField(0, traj.Nearest)
		Expect(err).NotTo(HaveOccurred())

		result, err := traj.Integrate(context.Background(), traj.Position{Lat: 40, Lon: -115}, field, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Len()).To(Equal(3))
		Expect(result.HistoryString()).To(ContainSubstring("lat=40, lon=-115"))
	})
})
