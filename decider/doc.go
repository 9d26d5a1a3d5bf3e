/*Package decider selects the BAM files to merge and preprocess and groups
  them into workflow runs.

  The input is a list of provenance records, one per file. A run of the
  decider goes through these steps:

    1. Filter: records without an application/bam file, records whose only
       BAMs are transcriptome alignments, and records outside the selected
       tissue types or library template type are dropped.

    2. Wrap: each remaining record becomes a GroupableFile carrying its
       dedup key (sequencer run, lane, barcode, metatype), its group key
       (donor, library template type, group id and optionally aligner,
       tissue prep, tissue region) and the name of the workflow that
       produced it. Records lacking any of these tags are logged and
       skipped.

    3. Dedup: for every dedup key only the file with the latest timestamp
       is kept. On equal timestamps the file seen first wins.

    4. Partition: the kept files are split into workflow runs, by group key
       or by a caller-supplied GroupByFunc.

    5. Build: per run, files are grouped by group key and three properties
       are rendered with one ';'-separated segment per group, in sorted
       group order:

         input_files=g1_file1,g1_file2;g2_file1
         output_identifiers=g1_name;g2_name
         output_ius_lims_keys=g1_file1_ius,g1_file2_ius;g2_file1_ius

       The workflow splits them apart and associates them by position.

  All files must come from a single workflow (aligner); anything else is
  an *InconsistentProvenanceError. Invalid options are reported as
  *ConfigurationError before any grouping is done.
*/
package decider
