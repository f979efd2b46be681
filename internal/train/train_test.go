package train_test

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drug-spend-forecast/internal/model"
	"drug-spend-forecast/internal/preprocess"
	"drug-spend-forecast/internal/train"
)

func cleanDataset(t *testing.T, jsonStr string, schema model.Schema) *model.Dataset {
	t.Helper()
	df := dataframe.ReadJSON(strings.NewReader(jsonStr))
	require.NoError(t, df.Err)
	ds := &model.Dataset{Frame: df}
	require.NoError(t, schema.CheckFrame(ds.Frame))
	_, err := preprocess.Clean(ds, schema)
	require.NoError(t, err)
	return ds
}

const linearDrug = `{"Brnd_Name": "Drug A",
	"Tot_Spndng_2018": 100, "Tot_Spndng_2019": 200, "Tot_Spndng_2020": 300, "Tot_Spndng_2021": 400, "Tot_Spndng_2022": 500,
	"Avg_Spnd_Per_Bene_2018": 10, "Avg_Spnd_Per_Bene_2019": 20, "Avg_Spnd_Per_Bene_2020": 30, "Avg_Spnd_Per_Bene_2021": 40, "Avg_Spnd_Per_Bene_2022": 50}`

func TestFitRecoversLinearTrend(t *testing.T) {
	schema := model.DefaultSchema()
	ds := cleanDataset(t, "["+linearDrug+"]", schema)
	logger, _ := test.NewNullLogger()

	set, err := train.Fit(ds, schema, logger)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	total := set.Total["Drug A"]
	assert.InDelta(t, 100, total.Slope, 1e-6)
	assert.InDelta(t, 600, total.Predict(2023), 1e-6)

	avg := set.AvgPerBene["Drug A"]
	assert.InDelta(t, 10, avg.Slope, 1e-6)
	assert.InDelta(t, 60, avg.Predict(2023), 1e-6)
}

func TestFitTrainsPairsTogether(t *testing.T) {
	schema := model.DefaultSchema()
	ds := cleanDataset(t, "["+linearDrug+"]", schema)
	logger, _ := test.NewNullLogger()

	set, err := train.Fit(ds, schema, logger)
	require.NoError(t, err)

	for brand := range set.Total {
		_, ok := set.AvgPerBene[brand]
		assert.True(t, ok, "brand %q trained in total but not avg", brand)
	}
	for brand := range set.AvgPerBene {
		_, ok := set.Total[brand]
		assert.True(t, ok, "brand %q trained in avg but not total", brand)
	}
}

func TestFitSkipsRecordWithoutBrand(t *testing.T) {
	schema := model.DefaultSchema()
	ds := cleanDataset(t, `[`+linearDrug+`,
		{"Brnd_Name": "",
		 "Tot_Spndng_2018": 1, "Tot_Spndng_2019": 2, "Tot_Spndng_2020": 3, "Tot_Spndng_2021": 4, "Tot_Spndng_2022": 5,
		 "Avg_Spnd_Per_Bene_2018": 1, "Avg_Spnd_Per_Bene_2019": 2, "Avg_Spnd_Per_Bene_2020": 3, "Avg_Spnd_Per_Bene_2021": 4, "Avg_Spnd_Per_Bene_2022": 5}
	]`, schema)
	logger, hook := test.NewNullLogger()

	set, err := train.Fit(ds, schema, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
	_, ok := set.Total["Drug A"]
	assert.True(t, ok)
	assert.NotEmpty(t, hook.Entries)
}

func TestFitImputedDrugStillTrains(t *testing.T) {
	// Drug B has one junk total cell; the column mean from the other rows
	// repairs it during preprocessing, so Drug B still trains.
	schema := model.DefaultSchema()
	ds := cleanDataset(t, `[`+linearDrug+`,
		{"Brnd_Name": "Drug B",
		 "Tot_Spndng_2018": 1000, "Tot_Spndng_2019": 1100, "Tot_Spndng_2020": "suppressed", "Tot_Spndng_2021": 1300, "Tot_Spndng_2022": 1400,
		 "Avg_Spnd_Per_Bene_2018": 5, "Avg_Spnd_Per_Bene_2019": 6, "Avg_Spnd_Per_Bene_2020": 7, "Avg_Spnd_Per_Bene_2021": 8, "Avg_Spnd_Per_Bene_2022": 9}
	]`, schema)
	logger, _ := test.NewNullLogger()

	set, err := train.Fit(ds, schema, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	_, ok := set.Total["Drug B"]
	assert.True(t, ok)
}

func TestFitFailsWithNoTrainableDrugs(t *testing.T) {
	schema := model.DefaultSchema()
	ds := cleanDataset(t, `[
		{"Brnd_Name": "Drug J",
		 "Tot_Spndng_2018": "n/a", "Tot_Spndng_2019": "n/a", "Tot_Spndng_2020": "n/a", "Tot_Spndng_2021": "n/a", "Tot_Spndng_2022": "n/a",
		 "Avg_Spnd_Per_Bene_2018": 1, "Avg_Spnd_Per_Bene_2019": 2, "Avg_Spnd_Per_Bene_2020": 3, "Avg_Spnd_Per_Bene_2021": 4, "Avg_Spnd_Per_Bene_2022": 5}
	]`, schema)
	logger, _ := test.NewNullLogger()

	set, err := train.Fit(ds, schema, logger)
	assert.Error(t, err)
	assert.Nil(t, set)
}

func TestFitNilDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := train.Fit(nil, model.DefaultSchema(), logger)
	assert.Error(t, err)
}
