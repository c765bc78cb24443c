package sqlinline

const QEnsureSnapshotTable = `--sql 5c2e7a19-84d3-4f0b-a6e2-91b7d03c4f58
create table if not exists governance_snapshots (
  key text primary key,
  payload bytea not null,
  saved_at timestamptz not null default now()
);
`

const QUpsertSnapshot = `--sql b8d41f06-3a9c-4e27-8f15-6c0e2d9a7b34
insert into governance_snapshots(key, payload, saved_at)
values ($1::text, $2::bytea, now())
on conflict (key) do update set payload = excluded.payload, saved_at = excluded.saved_at;
`

const QSelectSnapshot = `--sql 0e9f6b27-c153-4d8a-b740-3a82e5f1c96d
select payload
from governance_snapshots
where key = $1::text;
`
